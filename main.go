package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/okellodev/bookmart-api/config"
	"github.com/okellodev/bookmart-api/database"
	"github.com/okellodev/bookmart-api/routes"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to run migrations: ", err)
	}

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, db, cfg)
	routes.ProductRoutes(server, db, cfg)
	routes.CategoryRoutes(server, db, cfg)
	routes.OrderRoutes(server, db, cfg)
	routes.CartRoutes(server, db, cfg)
	routes.UserRoutes(server, db, cfg)

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
