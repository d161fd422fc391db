package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/models"
	"gorm.io/gorm"
)

type categoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	ParentID    *uint  `json:"parentId"`
}

var errCategoryHasChildren = errors.New("category has child categories")

func loadAllCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	result := db.Find(&categories)
	return categories, result.Error
}

// validateParent rejects a parent assignment that would make the
// category its own ancestor: the parent must exist and must not be the
// category itself or one of its descendants.
func validateParent(db *gorm.DB, categoryID uint, parentID uint) error {
	if parentID == categoryID {
		return errors.New("category cannot be its own parent")
	}

	categories, err := loadAllCategories(db)
	if err != nil {
		return err
	}

	found := false
	for _, category := range categories {
		if category.ID == parentID {
			found = true
			break
		}
	}
	if !found {
		return errors.New("parent category does not exist")
	}

	if models.IsDescendant(categories, categoryID, parentID) {
		return errors.New("category cannot be moved under one of its descendants")
	}
	return nil
}

func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		query := db.Model(&models.Category{}).Order("name asc")

		// ?parentId=3 filters children of one node; ?parentId=root lists top level
		if parent := strings.TrimSpace(ctx.Query("parentId")); parent != "" {
			if parent == "root" {
				query = query.Where("parent_id IS NULL")
			} else {
				parentID, err := strconv.Atoi(parent)
				if err != nil {
					respondWithError(ctx, http.StatusBadRequest, "Invalid parent ID", err)
					return
				}
				query = query.Where("parent_id = ?", parentID)
			}
		}

		var categories []models.Category
		if result := query.Find(&categories); result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", result.Error)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func GetCategory(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		categoryId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
			return
		}

		var category models.Category
		result := db.First(&category, categoryId)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", result.Error)
			}
			return
		}

		ctx.JSON(http.StatusOK, category)
	}
}

// GetCategoryParentOptions lists the categories that may be chosen as
// the parent of the given category in the admin console dropdown.
func GetCategoryParentOptions(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		categoryId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil || categoryId < 1 {
			respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
			return
		}

		categories, err := loadAllCategories(db)
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch categories", err)
			return
		}

		options, found := models.ValidParents(categories, uint(categoryId))
		if !found {
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"categories": options})
	}
}

func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var input categoryInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		slug := strings.TrimSpace(input.Slug)
		if slug == "" {
			slug = slugify(input.Name)
		}

		if input.ParentID != nil {
			exists, err := categoryExists(db, *input.ParentID)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate parent", err)
				return
			}
			if !exists {
				respondWithError(ctx, http.StatusBadRequest, "Parent category does not exist", nil)
				return
			}
		}

		category := models.Category{
			Name:        strings.TrimSpace(input.Name),
			Slug:        slug,
			Description: input.Description,
			ImageURL:    input.ImageURL,
			ParentID:    input.ParentID,
		}

		if err := db.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondWithError(ctx, http.StatusBadRequest, "Category with this slug already exists", nil)
				return
			}
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create category", err)
			return
		}

		ctx.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		categoryId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
			return
		}

		var category models.Category
		if result := db.First(&category, categoryId); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve category", result.Error)
			}
			return
		}

		var input categoryInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if input.ParentID != nil {
			if err := validateParent(db, category.ID, *input.ParentID); err != nil {
				respondWithError(ctx, http.StatusBadRequest, err.Error(), nil)
				return
			}
		}

		category.Name = strings.TrimSpace(input.Name)
		if slug := strings.TrimSpace(input.Slug); slug != "" {
			category.Slug = slug
		}
		category.Description = input.Description
		category.ImageURL = input.ImageURL
		category.ParentID = input.ParentID

		if err := db.Save(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				respondWithError(ctx, http.StatusBadRequest, "Category with this slug already exists", nil)
				return
			}
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update category", err)
			return
		}

		ctx.JSON(http.StatusOK, category)
	}
}

// DeleteCategory removes a category without children. Products pointing
// at it are detached (category_id set to NULL) in the same transaction.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		categoryId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var childCount int64
			if err := tx.Model(&models.Category{}).Where("parent_id = ?", categoryId).Count(&childCount).Error; err != nil {
				return err
			}
			if childCount > 0 {
				return errCategoryHasChildren
			}

			if err := tx.Model(&models.Product{}).Where("category_id = ?", categoryId).
				Update("category_id", nil).Error; err != nil {
				return err
			}

			result := tx.Delete(&models.Category{}, categoryId)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})

		switch {
		case errors.Is(err, errCategoryHasChildren):
			respondWithError(ctx, http.StatusBadRequest, "Cannot delete a category that has child categories", nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondWithError(ctx, http.StatusNotFound, "Category not found", nil)
		case err != nil:
			log.Println("Category delete error:", err)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete category", err)
		default:
			sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Category deleted successfully."})
		}
	}
}
