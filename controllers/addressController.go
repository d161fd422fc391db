package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/middlewares"
	"github.com/okellodev/bookmart-api/models"
	"gorm.io/gorm"
)

type addressInput struct {
	Name        string `json:"name" binding:"required"`
	StreetLine1 string `json:"streetLine1" binding:"required"`
	StreetLine2 string `json:"streetLine2"`
	City        string `json:"city" binding:"required"`
	State       string `json:"state" binding:"required"`
	PostalCode  string `json:"postalCode" binding:"required"`
	Country     string `json:"country" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
	IsDefault   bool   `json:"isDefault"`
}

// unsetDefaultAddresses clears the default flag on every address of the
// user. Runs inside the caller's transaction so switching the default
// never leaves two flags set.
func unsetDefaultAddresses(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}

func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		var addresses []models.Address
		if result := db.Where("user_id = ?", userID).Order("is_default desc, created_at desc").
			Find(&addresses); result.Error != nil {
			log.Println("Address fetch error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch addresses")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"addresses": addresses})
	}
}

func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		var input addressInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
			return
		}

		// The first address a user creates becomes the default.
		var count int64
		if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			log.Println("Address count error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create address")
			return
		}

		address := models.Address{
			UserID:      userID,
			Name:        input.Name,
			StreetLine1: input.StreetLine1,
			StreetLine2: input.StreetLine2,
			City:        input.City,
			State:       input.State,
			PostalCode:  input.PostalCode,
			Country:     input.Country,
			PhoneNumber: input.PhoneNumber,
			IsDefault:   input.IsDefault || count == 0,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := unsetDefaultAddresses(tx, userID); err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			log.Println("Address creation error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create address")
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{"address": address})
	}
}

func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		addressId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address id")
			return
		}

		var input addressInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
			return
		}

		var addresses []models.Address
		if result := db.Where("user_id = ?", userID).Find(&addresses); result.Error != nil {
			log.Println("Address fetch error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch address")
			return
		}

		target := -1
		for i := range addresses {
			if addresses[i].ID == uint(addressId) {
				target = i
				break
			}
		}
		if target == -1 {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
			return
		}

		addresses[target].Name = input.Name
		addresses[target].StreetLine1 = input.StreetLine1
		addresses[target].StreetLine2 = input.StreetLine2
		addresses[target].City = input.City
		addresses[target].State = input.State
		addresses[target].PostalCode = input.PostalCode
		addresses[target].Country = input.Country
		addresses[target].PhoneNumber = input.PhoneNumber

		if input.IsDefault {
			models.MarkDefault(addresses, addresses[target].ID)
		} else {
			addresses[target].IsDefault = false
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			return tx.Save(&addresses).Error
		})
		if err != nil {
			log.Println("Address update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update address")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"address": addresses[target]})
	}
}

func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		addressId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address id")
			return
		}

		result := db.Where("id = ? AND user_id = ?", addressId, userID).Delete(&models.Address{})
		if result.Error != nil {
			log.Println("Address delete error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete address")
			return
		}
		if result.RowsAffected == 0 {
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Address deleted successfully."})
	}
}
