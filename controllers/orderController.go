package controllers

import (
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/middlewares"
	"github.com/okellodev/bookmart-api/models"
	"github.com/okellodev/bookmart-api/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type orderItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type orderInput struct {
	Items             []orderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddressID *uint            `json:"shippingAddressId"`
	ShippingName      string           `json:"shippingName"`
	ShippingStreet    string           `json:"shippingStreet"`
	ShippingCity      string           `json:"shippingCity"`
	Phone             string           `json:"phone"`
}

var errInsufficientStock = errors.New("insufficient stock")

// CreateOrder places an order for the authenticated user. The order row
// and its items are written in one transaction; item prices are
// snapshots of the product price at purchase time.
func CreateOrder(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	gateway := newPaymentGateway(cfg.Payment)

	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		var input orderInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			log.Printf("JSON binding error: %v", err)
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
			return
		}

		order := models.Order{
			Reference:      uuid.NewString(),
			UserID:         userID,
			Status:         models.OrderStatusPending,
			ShippingName:   input.ShippingName,
			ShippingStreet: input.ShippingStreet,
			ShippingCity:   input.ShippingCity,
			Phone:          input.Phone,
			PaymentStatus:  "PENDING",
		}

		if input.ShippingAddressID != nil {
			var address models.Address
			if err := db.Where("id = ? AND user_id = ?", *input.ShippingAddressID, userID).
				First(&address).Error; err != nil {
				sendErrorResponse(ctx, http.StatusBadRequest, "Shipping address not found")
				return
			}
			order.ShippingAddressID = &address.ID
			order.ShippingName = address.Name
			order.ShippingStreet = address.StreetLine1
			order.ShippingCity = address.City
			if order.Phone == "" {
				order.Phone = address.PhoneNumber
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			total := decimal.Zero
			items := make([]models.OrderItem, 0, len(input.Items))

			for _, line := range input.Items {
				var product models.Product
				if err := tx.First(&product, line.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: product %d", gorm.ErrRecordNotFound, line.ProductID)
					}
					return err
				}
				if product.Stock < line.Quantity {
					return fmt.Errorf("%w: %s", errInsufficientStock, product.Name)
				}

				items = append(items, models.OrderItem{
					ProductID: product.ID,
					Name:      product.Name,
					Price:     product.Price,
					Quantity:  line.Quantity,
				})
				total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			}

			order.Total = total
			order.OrderItems = items
			return tx.Create(&order).Error
		})

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			sendErrorResponse(ctx, http.StatusBadRequest, "One or more products do not exist")
			return
		case errors.Is(err, errInsufficientStock):
			sendErrorResponse(ctx, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Println("Order creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to save order")
			return
		}

		go sendOrderConfirmationEmail(db, cfg, order)

		if !gateway.Enabled() {
			sendJSONResponse(ctx, http.StatusCreated, gin.H{
				"message": "Order created successfully.",
				"order":   order,
			})
			return
		}

		redirectURL, trackingID, err := gateway.SubmitOrder(order)
		if err != nil {
			log.Printf("Payment initiation failed for order %d: %v", order.ID, err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to initiate payment")
			return
		}

		if err := db.Model(&order).Updates(map[string]any{
			"payment_tracking_id": trackingID,
			"payment_status":      "PENDING",
		}).Error; err != nil {
			log.Printf("Order %d created, but tracking ID not saved: %s", order.ID, trackingID)
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message":         "Order created successfully. Redirect user to payment.",
			"order":           order,
			"redirectUrl":     redirectURL,
			"orderTrackingId": trackingID,
		})
	}
}

func sendOrderConfirmationEmail(db *gorm.DB, cfg config.Config, order models.Order) {
	if !cfg.SMTP.Enabled() {
		return
	}

	var user models.User
	if err := db.First(&user, order.UserID).Error; err != nil {
		log.Println("Order confirmation email skipped, user lookup failed:", err)
		return
	}

	emailData := utils.EmailData{
		Name:    user.Fullname,
		Message: fmt.Sprintf("Your order %s has been received and is pending confirmation.", order.Reference),
		LinkURL: cfg.FrontendURL + "/orders/" + strconv.Itoa(int(order.ID)),
		LogoURL: cfg.FrontendURL + "/images/logo.png",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := utils.SendEmail(cfg.SMTP, user.Email, "Order Confirmation", emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}

// GetOrders lists all orders for the admin console.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var orders []models.Order

		page, limit, offset := parsePagination(ctx, 15)

		sortOrder := ctx.DefaultQuery("sort", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Preload("OrderItems")
		countQuery := db.Model(&models.Order{})

		if status := ctx.Query("status"); status != "" {
			query = query.Where("status = ?", status)
			countQuery = countQuery.Where("status = ?", status)
		}

		if search := ctx.Query("search"); search != "" {
			query = query.Where("reference LIKE ?", "%"+search+"%")
			countQuery = countQuery.Where("reference LIKE ?", "%"+search+"%")
		}

		query = query.Order("created_at " + sortOrder)

		result := query.Limit(limit).Offset(offset).Find(&orders)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
			return
		}

		var count int64
		countQuery.Count(&count)

		previousPage := page - 1
		nextPage := page + 1
		totalPages := math.Ceil(float64(count) / float64(limit))

		ctx.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"metadata": gin.H{
				"total":        count,
				"currentPage":  page,
				"limit":        limit,
				"hasPrevPage":  previousPage > 0,
				"hasNextPage":  int(totalPages) > page,
				"previousPage": previousPage,
				"nextPage":     nextPage,
			},
		})
	}
}

// GetMyOrders lists the authenticated user's orders.
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		sortOrder := ctx.DefaultQuery("sort", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		var orders []models.Order
		result := db.Preload("OrderItems").
			Where("user_id = ?", userID).
			Order("created_at " + sortOrder).
			Find(&orders)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
	}
}

// GetOrder returns one order. Non-admins may only read their own.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
			return
		}

		var order models.Order
		if result := db.Preload("OrderItems").First(&order, orderId); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			} else {
				log.Println(result.Error)
				sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
			}
			return
		}

		userID, _ := middlewares.CurrentUserID(ctx)
		if middlewares.CurrentUserRole(ctx) != models.RoleAdmin && order.UserID != userID {
			sendErrorResponse(ctx, http.StatusForbidden, "You do not have access to this order")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
	}
}

// UpdateOrderStatus is the admin status PATCH. The target status only
// has to be a member of the enum; any state may be set from any other.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var orderStatusData struct {
			Status models.OrderStatus `json:"status" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
			return
		}

		if !models.IsValidOrderStatus(orderStatusData.Status) {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
			return
		}

		orderId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id")
			return
		}

		result := db.Model(&models.Order{}).Where("id = ?", orderId).
			Update("status", orderStatusData.Status)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
			return
		}
		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order status updated successfully."})
	}
}

func DeleteOrder(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		orderId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse order id.")
			return
		}

		result := db.Delete(&models.Order{}, orderId)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete order.")
			return
		}
		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Order deleted successfully."})
	}
}

// GetUndeliveredOrders powers the admin dashboard badge.
func GetUndeliveredOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var count int64

		result := db.Model(&models.Order{}).
			Where("status NOT IN ?", []models.OrderStatus{
				models.OrderStatusDelivered,
				models.OrderStatusCancelled,
			}).
			Count(&count)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to count undelivered orders", result.Error)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"undeliveredOrderCount": count})
	}
}
