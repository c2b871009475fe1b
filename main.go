package main

import (
	"time"

	"billing-app/config"
	"billing-app/database"
	routes "billing-app/internal/app/http"
	"billing-app/internal/infra/stripeclient"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	stripeClient := stripeclient.New(config.STRIPE_SECRET_KEY)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, database.DB, stripeClient)

	r.Run(":" + config.PORT)
}
