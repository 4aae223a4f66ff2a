package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
)

type cancelRequest struct {
	UserID string `json:"user_id"`
}

// CancelSubscription handles POST /billing/cancel. The token's subject must be
// the user being downgraded.
func (h *Handler) CancelSubscription(c *gin.Context) {
	ctx := c.Request.Context()

	var body cancelRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.UserID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid user_id"})
		return
	}
	targetID := strings.TrimSpace(body.UserID)

	subject := c.GetString(middleware.CtxUserID)
	if subject == "" || subject != targetID {
		h.logger.WarnContext(ctx, "cancel rejected: identity mismatch",
			slog.String("subject", subject), slog.String("target", targetID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token does not match user"})
		return
	}

	current, err := h.subs.CurrentTier(ctx, targetID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user", "details": err.Error()})
		return
	}

	if !plans.IsPaidTier(current) {
		c.JSON(http.StatusOK, gin.H{"message": "No active subscription to cancel"})
		return
	}

	if err := h.subs.Update(ctx, targetID, plans.TierFree); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Subscription cancelled",
		"previous_tier":       current,
		"subscription_status": plans.TierFree,
	})
}
