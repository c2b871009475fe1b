package billing

import (
	"net/http"

	billingdomain "billing-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// SyncCatalog mirrors Stripe's active recurring prices (with their products)
// into the local catalog. Normally the webhook keeps the mirror current; this
// admin endpoint backfills after downtime or a fresh deploy.
func (h *Handler) SyncCatalog(c *gin.Context) {
	prices, err := h.Stripe.ListActiveRecurringPrices()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices"})
		return
	}

	synced := 0
	skipped := 0

	for _, p := range prices {
		if !p.Active || p.Recurring == nil || p.Product == nil || !p.Product.Active {
			skipped++
			continue
		}

		// visibility flag
		if p.Metadata["visible"] == "false" {
			skipped++
			continue
		}

		rec, err := billingdomain.PriceRecord(p)
		if err != nil {
			skipped++
			continue
		}

		if err := h.Repo.UpsertProduct(billingdomain.ProductRecord(p.Product)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync product", "details": err.Error()})
			return
		}
		if err := h.Repo.UpsertPrice(rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync price", "details": err.Error()})
			return
		}
		synced++
	}

	c.JSON(http.StatusOK, gin.H{"synced": synced, "skipped": skipped})
}
