package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/domain/access"
	"nutrition-app/internal/domain/users"
)

// UserFinder loads the caller's record so the guard sees the current tier,
// not the one at token issue time.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

func RequireCapability(finder UserFinder, capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
			return
		}

		user, err := finder.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if !access.Has(user.SubscriptionStatus, capability) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "Your plan does not include this feature",
				"capability": string(capability),
			})
			return
		}

		c.Next()
	}
}
