package models

import "gorm.io/gorm"

// Address belongs to a user. At most one address per user carries
// IsDefault; the controller switches the flag inside a transaction.
type Address struct {
	gorm.Model
	UserID      uint   `json:"userId" gorm:"index"`
	Name        string `json:"name"`
	StreetLine1 string `json:"streetLine1"`
	StreetLine2 string `json:"streetLine2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
	IsDefault   bool   `json:"isDefault"`
}

// MarkDefault makes the address with the given id the single default,
// clearing the flag on every other address in the slice.
func MarkDefault(addresses []Address, id uint) {
	for i := range addresses {
		addresses[i].IsDefault = addresses[i].ID == id
	}
}

// DefaultCount reports how many addresses carry the default flag; the
// invariant is that a user never has more than one.
func DefaultCount(addresses []Address) int {
	count := 0
	for _, address := range addresses {
		if address.IsDefault {
			count++
		}
	}
	return count
}
