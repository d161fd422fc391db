package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/models"
	"gorm.io/gorm"
)

// Admin console user management.

func GetUsers(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var users []models.User

		page, limit, offset := parsePagination(ctx, 15)

		query := db.Model(&models.User{})
		countQuery := db.Model(&models.User{})

		if search := ctx.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("fullname LIKE ? OR email LIKE ?", like, like)
			countQuery = countQuery.Where("fullname LIKE ? OR email LIKE ?", like, like)
		}

		result := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&users)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", result.Error)
			return
		}

		var count int64
		countQuery.Count(&count)

		ctx.JSON(http.StatusOK, gin.H{
			"users": users,
			"metadata": gin.H{
				"total": count,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid user ID", err)
			return
		}

		var user models.User
		result := db.Preload("Addresses").First(&user, userId)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "User not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve user", result.Error)
			}
			return
		}

		ctx.JSON(http.StatusOK, user)
	}
}

// CreateUser lets an admin create an account directly. The account is
// activated immediately; no verification email is sent.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		type adminUserInput struct {
			Fullname string `json:"fullname" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Phone    string `json:"phone"`
			Password string `json:"password" binding:"required,min=8"`
			Role     string `json:"role"`
		}

		var input adminUserInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		role := input.Role
		if role == "" {
			role = models.RoleUser
		}
		if role != models.RoleUser && role != models.RoleAdmin {
			respondWithError(ctx, http.StatusBadRequest, "Invalid role", nil)
			return
		}

		taken, err := emailTaken(db, input.Email)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to validate email", err)
			return
		}
		if taken {
			respondWithError(ctx, http.StatusBadRequest, msgUserAlreadyExists, nil)
			return
		}

		hashedPassword, err := hashPassword(input.Password)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, msgFailedToHashPassword, err)
			return
		}

		user := models.User{
			Fullname:         input.Fullname,
			Email:            input.Email,
			Phone:            input.Phone,
			Password:         hashedPassword,
			Role:             role,
			AccountActivated: true,
		}

		if result := db.Create(&user); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				respondWithError(ctx, http.StatusBadRequest, msgUserAlreadyExists, nil)
				return
			}
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create user", result.Error)
			return
		}

		ctx.JSON(http.StatusCreated, user)
	}
}

func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid user ID", err)
			return
		}

		type userUpdateInput struct {
			Fullname string `json:"fullname" binding:"required"`
			Phone    string `json:"phone"`
		}

		var input userUpdateInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		var user models.User
		if result := db.First(&user, userId); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "User not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve user", result.Error)
			}
			return
		}

		user.Fullname = input.Fullname
		user.Phone = input.Phone

		if err := db.Save(&user).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update user", err)
			return
		}

		ctx.JSON(http.StatusOK, user)
	}
}

// UpdateUserRole is the admin PATCH switching a user between the two
// roles.
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid user ID", err)
			return
		}

		var input struct {
			Role string `json:"role" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if input.Role != models.RoleUser && input.Role != models.RoleAdmin {
			respondWithError(ctx, http.StatusBadRequest, "Invalid role", nil)
			return
		}

		result := db.Model(&models.User{}).Where("id = ?", userId).Update("role", input.Role)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update role", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "User not found", nil)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User role updated successfully."})
	}
}

func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid user ID", err)
			return
		}

		result := db.Delete(&models.User{}, userId)
		if result.Error != nil {
			log.Println("User delete error:", result.Error)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete user", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "User not found", nil)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully."})
	}
}
