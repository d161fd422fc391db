package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/controllers"
	"github.com/okellodev/bookmart-api/middlewares"
	"gorm.io/gorm"
)

func CategoryRoutes(server *gin.Engine, db *gorm.DB, cfg config.Config) {
	categories := server.Group("/api/categories")
	{
		categories.GET("", controllers.GetCategories(db))
		categories.GET("/:id", controllers.GetCategory(db))
	}

	admin := server.Group("/api/categories", middlewares.RequireAuth(cfg.JWTSecret), middlewares.RequireAdmin())
	{
		admin.GET("/:id/parent-options", controllers.GetCategoryParentOptions(db))
		admin.POST("", controllers.CreateCategory(db))
		admin.PUT("/:id", controllers.UpdateCategory(db))
		admin.DELETE("/:id", controllers.DeleteCategory(db))
	}
}
