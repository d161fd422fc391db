package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/controllers"
	"github.com/okellodev/bookmart-api/middlewares"
	"gorm.io/gorm"
)

func ProductRoutes(server *gin.Engine, db *gorm.DB, cfg config.Config) {
	products := server.Group("/api/products")
	{
		products.GET("", controllers.GetProducts(db))
		products.GET("/:id", controllers.GetProduct(db))
	}

	admin := server.Group("/api/products", middlewares.RequireAuth(cfg.JWTSecret), middlewares.RequireAdmin())
	{
		admin.POST("", controllers.CreateProduct(db))
		admin.PUT("/:id", controllers.UpdateProduct(db))
		admin.DELETE("/:id", controllers.DeleteProduct(db))
		admin.POST("/:id/images", controllers.UploadProductImages(db, cfg.AWSBucket))
	}
}
