package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatuses lists the accepted values for the admin status PATCH.
// Transitions are not constrained beyond enum membership; the admin
// console may move an order between any two states.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsValidOrderStatus(status OrderStatus) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	Reference         string          `json:"reference" gorm:"uniqueIndex;size:36"`
	UserID            uint            `json:"userId" gorm:"index"`
	Status            OrderStatus     `json:"status" gorm:"size:16"`
	Total             decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	ShippingAddressID *uint           `json:"shippingAddressId"`
	ShippingName      string          `json:"shippingName"`
	ShippingStreet    string          `json:"shippingStreet"`
	ShippingCity      string          `json:"shippingCity"`
	Phone             string          `json:"phone"`
	PaymentStatus     string          `json:"paymentStatus"`
	PaymentTrackingID string          `json:"paymentTrackingId"`
	OrderItems        []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem.Price is the product price at purchase time, not the
// current Product.Price.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"index"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity"`
}
