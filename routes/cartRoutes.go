package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/controllers"
	"github.com/okellodev/bookmart-api/middlewares"
	"gorm.io/gorm"
)

func CartRoutes(server *gin.Engine, db *gorm.DB, cfg config.Config) {
	cart := server.Group("/api/cart", middlewares.RequireAuth(cfg.JWTSecret))
	{
		cart.GET("", controllers.GetCart(db))
		cart.POST("", controllers.AddCartItem(db))
		cart.PUT("/items/:productId", controllers.UpdateCartItem(db))
		cart.DELETE("/items/:productId", controllers.RemoveCartItem(db))
		cart.DELETE("", controllers.ClearCart(db))
	}
}
