package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/controllers"
	"github.com/okellodev/bookmart-api/middlewares"
	"gorm.io/gorm"
)

func UserRoutes(server *gin.Engine, db *gorm.DB, cfg config.Config) {
	// Current-user profile and addresses
	user := server.Group("/api/user", middlewares.RequireAuth(cfg.JWTSecret))
	{
		user.GET("/profile", controllers.GetProfile(db))
		user.PUT("/profile", controllers.UpdateProfile(db))
		user.PUT("/password", controllers.UpdatePassword(db))

		user.GET("/addresses", controllers.GetAddresses(db))
		user.POST("/addresses", controllers.CreateAddress(db))
		user.PUT("/addresses/:id", controllers.UpdateAddress(db))
		user.DELETE("/addresses/:id", controllers.DeleteAddress(db))
	}

	// Admin user console
	admin := server.Group("/api/users", middlewares.RequireAuth(cfg.JWTSecret), middlewares.RequireAdmin())
	{
		admin.GET("", controllers.GetUsers(db))
		admin.POST("", controllers.CreateUser(db))
		admin.GET("/:id", controllers.GetUser(db))
		admin.PUT("/:id", controllers.UpdateUser(db))
		admin.PATCH("/:id", controllers.UpdateUserRole(db))
		admin.DELETE("/:id", controllers.DeleteUser(db))
	}
}
