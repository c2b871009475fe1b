package stripewebhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"billing-app/internal/domain/billing"
	"billing-app/internal/infra/stripeclient"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

const maxBodyBytes = 65536

// Handler reconciles Stripe webhook events into the mirrored billing tables.
// Signature verification runs against the raw request body before any
// dispatch; a 500 response tells Stripe to redeliver the event later, which
// is safe because every upsert is idempotent.
type Handler struct {
	Repo   billing.Repository
	Stripe stripeclient.Client
	Secret string
}

func NewHandler(repo billing.Repository, sc stripeclient.Client, secret string) *Handler {
	return &Handler{Repo: repo, Stripe: sc, Secret: secret}
}

func (h *Handler) Handle(c *gin.Context) {
	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.Secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		log.Println("stripe signature verification failed:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "product.created", "product.updated":
		var product stripe.Product
		if err := json.Unmarshal(event.Data.Raw, &product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse product"})
			return
		}
		if err := h.upsertProduct(&product); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "price.created", "price.updated":
		var price stripe.Price
		if err := json.Unmarshal(event.Data.Raw, &price); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse price"})
			return
		}
		if err := h.upsertPrice(&price); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		if sub.ID == "" || sub.Customer == nil || sub.Customer.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subscription event missing id or customer"})
			return
		}
		if err := h.reconcileSubscription(sub.ID, sub.Customer.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	default:
		// Acknowledge unknown events to avoid retries
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
