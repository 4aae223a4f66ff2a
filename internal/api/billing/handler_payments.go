package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/domain/plans"
)

func (h *Handler) GetPaymentHistory(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payments, err := h.payments.ListPaymentsByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

type PlanDTO struct {
	Plan        string `json:"plan"`
	Tier        string `json:"tier"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// ListPlans is public; the pricing page renders from it.
func ListPlans(c *gin.Context) {
	out := make([]PlanDTO, 0, 2)
	for _, p := range []string{plans.PlanPremium, plans.PlanProfessional} {
		tier, _ := plans.TierForPlan(p)
		out = append(out, PlanDTO{
			Plan:        p,
			Tier:        tier,
			AmountCents: plans.PriceCents(p),
			Currency:    "BRL",
		})
	}
	c.JSON(http.StatusOK, out)
}
