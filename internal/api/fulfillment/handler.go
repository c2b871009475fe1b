package fulfillment

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the post-checkout landing flow.
type Handler struct {
	Coordinator *Coordinator
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{Coordinator: coordinator}
}

// CheckoutSuccess runs fulfillment synchronously for the redirect after
// payment, then re-reads the stored status for display. A failed fulfillment
// still answers 200 with the failure reason in the result.
func (h *Handler) CheckoutSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	result := h.Coordinator.Fulfill(sessionID)

	status, err := h.Coordinator.Status(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read fulfillment status"})
		return
	}

	resp := gin.H{
		"session_id":        sessionID,
		"fulfillment":       result,
		"already_fulfilled": result.AlreadyFulfilled,
	}
	if status != nil {
		resp["status"] = status
	}
	c.JSON(http.StatusOK, resp)
}
