package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/controllers"
	"gorm.io/gorm"
)

func AuthRoutes(server *gin.Engine, db *gorm.DB, cfg config.Config) {
	auth := server.Group("/auth")
	{
		auth.POST("/signup", controllers.Signup(db, cfg))
		auth.POST("/login", controllers.Login(db, cfg))
		auth.POST("/verify-email/:activationToken", controllers.ActivateAccount(db))
		auth.POST("/forgot-password", controllers.SendPasswordResetLink(db, cfg))
		auth.POST("/reset-password/:resetToken", controllers.ResetPassword(db))
	}
}
