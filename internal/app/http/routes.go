package routes

import (
	"billing-app/config"
	billingapi "billing-app/internal/api/billing"
	"billing-app/internal/api/fulfillment"
	stripewebhooks "billing-app/internal/api/stripewebhook"
	usersapi "billing-app/internal/api/users"
	"billing-app/internal/app/http/middleware"
	"billing-app/internal/domain/billing"
	"billing-app/internal/domain/users"
	"billing-app/internal/infra/stripeclient"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, sc stripeclient.Client) {
	repo := billing.NewRepository(db)
	dir := users.NewDirectory(db)

	webhook := stripewebhooks.NewHandler(repo, sc, config.STRIPE_WEBHOOK_SECRET)
	coordinator := fulfillment.NewCoordinator(repo, dir, sc)
	fulfill := fulfillment.NewHandler(coordinator)
	billingHandler := billingapi.NewHandler(repo, dir, sc)
	me := usersapi.NewHandler(repo, dir)

	// Raw-body route: registered outside any sanitizing middleware so the
	// Stripe signature stays verifiable.
	r.POST("/webhook", webhook.Handle)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/products", billingHandler.ListProducts)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", me.GetCurrentUser)
	auth.GET("/me/subscription", me.GetMySubscription)
	auth.POST("/create-checkout-session", billingHandler.CreateCheckoutSession)
	auth.POST("/billing-portal", billingHandler.CreateBillingPortal)
	auth.GET("/checkout/success", fulfill.CheckoutSuccess)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.POST("/sync-catalog", billingHandler.SyncCatalog)
}
