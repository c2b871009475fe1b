package users

import (
	"errors"
	"net/http"

	"billing-app/internal/domain/billing"
	userdomain "billing-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Repo  billing.Repository
	Users userdomain.Directory
}

func NewHandler(repo billing.Repository, dir userdomain.Directory) *Handler {
	return &Handler{Repo: repo, Users: dir}
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	user, err := h.Users.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// GetMySubscription returns the caller's active or trialing subscription with
// price and product preloaded, null when there is none.
func (h *Handler) GetMySubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sub, err := h.Repo.GetActiveSubscriptionForUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"subscription": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": buildSubscriptionView(sub)})
}
