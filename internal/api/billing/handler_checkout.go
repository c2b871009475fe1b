package billing

import (
	"errors"
	"fmt"
	"net/http"

	"billing-app/config"
	billingdomain "billing-app/internal/domain/billing"
	"billing-app/internal/domain/users"
	"billing-app/internal/infra/stripeclient"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"gorm.io/gorm"
)

// Handler serves the authenticated billing surface: checkout-session
// creation, the billing portal, the public catalog and admin catalog sync.
type Handler struct {
	Repo   billingdomain.Repository
	Users  users.Directory
	Stripe stripeclient.Client
}

func NewHandler(repo billingdomain.Repository, dir users.Directory, sc stripeclient.Client) *Handler {
	return &Handler{Repo: repo, Users: dir, Stripe: sc}
}

func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var body struct {
		PriceID  string `json:"price_id"`
		Quantity int64  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.PriceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid price_id"})
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	// allow-list: only prices mirrored into the catalog can be bought
	price, err := h.Repo.GetPrice(body.PriceID)
	if err != nil || !price.Active {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown or inactive price_id"})
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	customerID, err := h.ensureCustomer(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve Stripe customer"})
		return
	}

	mode := stripe.CheckoutSessionModePayment
	if price.Type == "recurring" {
		mode = stripe.CheckoutSessionModeSubscription
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.APP_URL + "/pricing?canceled=true"),
		Mode:       stripe.String(string(mode)),
		Customer:   stripe.String(customerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(price.ID), Quantity: stripe.Int64(body.Quantity)},
		},

		AllowPromotionCodes:      stripe.Bool(true),
		BillingAddressCollection: stripe.String("auto"),
		ClientReferenceID:        stripe.String(fmt.Sprint(user.ID)),

		// the fulfillment coordinator resolves the owner from this
		Metadata: map[string]string{
			"user_id": fmt.Sprint(user.ID),
		},
	}

	s, err := h.Stripe.NewCheckoutSession(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": s.ID, "url": s.URL})
}

func (h *Handler) CreateBillingPortal(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	customer, err := h.Repo.GetCustomerByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No customer found. Please subscribe first."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up customer"})
		return
	}

	portal, err := h.Stripe.NewBillingPortalSession(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customer.StripeCustomerID),
		ReturnURL: stripe.String(config.APP_URL + "/dashboard"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create billing portal session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": portal.URL})
}

// ensureCustomer returns the user's Stripe customer id, creating the customer
// and the local mapping on first checkout.
func (h *Handler) ensureCustomer(user *users.User) (string, error) {
	existing, err := h.Repo.GetCustomerByUserID(user.ID)
	if err == nil {
		return existing.StripeCustomerID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	cus, err := h.Stripe.NewCustomer(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Metadata: map[string]string{
			"user_id": fmt.Sprint(user.ID),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create stripe customer: %w", err)
	}

	if err := h.Repo.CreateCustomer(&billingdomain.Customer{
		UserID:           user.ID,
		StripeCustomerID: cus.ID,
	}); err != nil {
		return "", fmt.Errorf("store customer mapping: %w", err)
	}

	return cus.ID, nil
}
