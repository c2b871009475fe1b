package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the active catalog with active prices, for the
// pricing page.
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Repo.ListActiveProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}
