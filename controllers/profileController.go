package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/middlewares"
	"github.com/okellodev/bookmart-api/models"
	"gorm.io/gorm"
)

func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		var user models.User
		if result := db.Preload("Addresses").First(&user, userID); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				sendErrorResponse(ctx, http.StatusNotFound, "User not found")
			} else {
				log.Println("Profile fetch error:", result.Error)
				sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			}
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
	}
}

func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		type profileInput struct {
			Fullname string `json:"fullname" binding:"required"`
			Phone    string `json:"phone"`
		}

		var input profileInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		var user models.User
		if result := db.First(&user, userID); result.Error != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
			return
		}

		user.Fullname = input.Fullname
		user.Phone = input.Phone

		if err := db.Save(&user).Error; err != nil {
			log.Println("Profile update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"user": user})
	}
}

// UpdatePassword changes the authenticated user's password after
// checking the current one.
func UpdatePassword(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := middlewares.CurrentUserID(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "unauthorized")
			return
		}

		type passwordInput struct {
			CurrentPassword string `json:"currentPassword" binding:"required"`
			NewPassword     string `json:"newPassword" binding:"required,min=8"`
		}

		var input passwordInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		var user models.User
		if result := db.First(&user, userID); result.Error != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "User not found")
			return
		}

		if err := comparePasswords(user.Password, input.CurrentPassword); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Current password is incorrect")
			return
		}

		hashedPassword, err := hashPassword(input.NewPassword)
		if err != nil {
			log.Println("Password hashing error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
			return
		}

		if err := db.Model(&user).Update("password", hashedPassword).Error; err != nil {
			log.Println("Password update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update password")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password updated successfully."})
	}
}
