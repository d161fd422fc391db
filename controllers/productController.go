package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type productInput struct {
	Name        string          `json:"name" binding:"required"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Stock       int             `json:"stock"`
	CategoryID  *uint           `json:"categoryId"`
}

func (in productInput) validate() error {
	if in.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if in.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

// categoryExists checks the FK target before assignment so a bad id
// surfaces as a 400 instead of a database error.
func categoryExists(db *gorm.DB, id uint) (bool, error) {
	var count int64
	result := db.Model(&models.Category{}).Where("id = ?", id).Count(&count)
	return count > 0, result.Error
}

func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var input productInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if err := input.validate(); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if input.CategoryID != nil {
			exists, err := categoryExists(db, *input.CategoryID)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate category", err)
				return
			}
			if !exists {
				respondWithError(ctx, http.StatusBadRequest, "Category does not exist", nil)
				return
			}
		}

		product := models.Product{
			Name:        input.Name,
			Author:      input.Author,
			ISBN:        input.ISBN,
			Description: input.Description,
			Price:       input.Price,
			ImageURL:    input.ImageURL,
			Stock:       input.Stock,
			CategoryID:  input.CategoryID,
		}

		if err := db.Create(&product).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create product", err)
			return
		}

		ctx.JSON(http.StatusCreated, product)
	}
}

func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var products []models.Product

		page, limit, offset := parsePagination(ctx, 12)

		query := db.Model(&models.Product{})
		countQuery := db.Model(&models.Product{})

		// Add search by name or author if provided
		if search := ctx.Query("search"); search != "" {
			like := "%" + search + "%"
			query = query.Where("name LIKE ? OR author LIKE ?", like, like)
			countQuery = countQuery.Where("name LIKE ? OR author LIKE ?", like, like)
		}

		if category := ctx.Query("categoryId"); category != "" {
			categoryID, err := strconv.Atoi(category)
			if err != nil {
				respondWithError(ctx, http.StatusBadRequest, "Invalid category ID", err)
				return
			}
			query = query.Where("category_id = ?", categoryID)
			countQuery = countQuery.Where("category_id = ?", categoryID)
		}

		result := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&products)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch products", result.Error)
			return
		}

		var count int64
		countQuery.Count(&count)

		ctx.JSON(http.StatusOK, gin.H{
			"products": products,
			"metadata": gin.H{
				"total": count,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		var product models.Product
		result := db.First(&product, productId)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
			}
			return
		}

		ctx.JSON(http.StatusOK, product)
	}
}

func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		var product models.Product
		if result := db.First(&product, productId); result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve product", result.Error)
			}
			return
		}

		var input productInput
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}
		if err := input.validate(); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if input.CategoryID != nil {
			exists, err := categoryExists(db, *input.CategoryID)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate category", err)
				return
			}
			if !exists {
				respondWithError(ctx, http.StatusBadRequest, "Category does not exist", nil)
				return
			}
		}

		product.Name = input.Name
		product.Author = input.Author
		product.ISBN = input.ISBN
		product.Description = input.Description
		product.Price = input.Price
		product.ImageURL = input.ImageURL
		product.Stock = input.Stock
		product.CategoryID = input.CategoryID

		if err := db.Save(&product).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to update product", err)
			return
		}

		ctx.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		result := db.Delete(&models.Product{}, productId)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete product", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Product deleted successfully."})
	}
}

// getAWSUploader returns a configured S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadProductImages uploads gallery images to S3 and appends the
// resulting URLs to the product's gallery.
func UploadProductImages(db *gorm.DB, bucket string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		productId, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		form, err := ctx.MultipartForm()
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid form data", err)
			return
		}

		files := form.File["images"]
		if len(files) == 0 {
			respondWithError(ctx, http.StatusBadRequest, "No files uploaded", nil)
			return
		}

		// Validate product exists
		var product models.Product
		if err := db.First(&product, productId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Product not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate product", err)
			}
			return
		}

		uploader, err := getAWSUploader()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
			return
		}

		var gallery []string
		if len(product.Gallery) > 0 {
			if err := json.Unmarshal(product.Gallery, &gallery); err != nil {
				log.Printf("Resetting unreadable gallery for product %d: %v", product.ID, err)
				gallery = nil
			}
		}

		var uploadedUrls []string
		var failedUploads []string

		for _, file := range files {
			f, openErr := file.Open()
			if openErr != nil {
				log.Printf("Error opening file %s: %v", file.Filename, openErr)
				failedUploads = append(failedUploads, file.Filename)
				continue
			}

			// Generate a unique filename to prevent overwrites
			uniqueFilename := fmt.Sprintf("%d-%s-%s", productId, time.Now().Format("20060102150405"), file.Filename)

			result, uploadErr := uploader.Upload(context.TODO(), &s3.PutObjectInput{
				Bucket:      aws.String(bucket),
				Key:         aws.String(uniqueFilename),
				Body:        f,
				ACL:         "public-read",
				ContentType: aws.String(file.Header.Get("Content-Type")),
			})
			f.Close() // Close file immediately after use

			if uploadErr != nil {
				log.Printf("Error uploading file %s: %v", file.Filename, uploadErr)
				failedUploads = append(failedUploads, file.Filename)
				continue
			}

			uploadedUrls = append(uploadedUrls, result.Location)
			gallery = append(gallery, result.Location)
		}

		if len(uploadedUrls) > 0 {
			galleryJSON, err := json.Marshal(gallery)
			if err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to encode gallery", err)
				return
			}
			if err := db.Model(&product).Update("gallery", datatypes.JSON(galleryJSON)).Error; err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to save gallery", err)
				return
			}
		}

		response := gin.H{
			"message": "Files processed",
			"urls":    uploadedUrls,
		}

		if len(failedUploads) > 0 {
			response["failed"] = failedUploads
		}

		ctx.JSON(http.StatusOK, response)
	}
}
