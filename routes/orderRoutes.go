package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/controllers"
	"github.com/okellodev/bookmart-api/middlewares"
	"gorm.io/gorm"
)

func OrderRoutes(server *gin.Engine, db *gorm.DB, cfg config.Config) {
	orders := server.Group("/api/orders", middlewares.RequireAuth(cfg.JWTSecret))
	{
		orders.POST("", controllers.CreateOrder(db, cfg))
		orders.GET("/mine", controllers.GetMyOrders(db))
		orders.GET("/:id", controllers.GetOrder(db))
	}

	admin := server.Group("/api/orders", middlewares.RequireAuth(cfg.JWTSecret), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetOrders(db))
		admin.GET("/undelivered-count", controllers.GetUndeliveredOrders(db))
		admin.PATCH("/:id", controllers.UpdateOrderStatus(db))
		admin.DELETE("/:id", controllers.DeleteOrder(db))
	}

	// Gateway notification callback; the provider calls it without auth
	server.POST("/api/payments/ipn", controllers.HandlePaymentIPN(db, cfg))
	server.GET("/api/payments/ipn", controllers.HandlePaymentIPN(db, cfg))
}
