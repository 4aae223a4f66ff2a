package billing

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
	"nutrition-app/internal/infra/abacatepay"
)

// Pix QR codes stay payable for one hour.
const chargeExpirySeconds = 3600

type checkoutRequest struct {
	Plan string `json:"plan" binding:"required,plan"`
}

func (h *Handler) CreateCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	var body checkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid plan"})
		return
	}
	plan := strings.ToUpper(strings.TrimSpace(body.Plan))

	if h.gateway == nil || !h.gateway.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		h.logger.ErrorContext(ctx, "checkout: load user failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user", "details": err.Error()})
		return
	}

	tier, _ := plans.TierForPlan(plan)
	if plans.TierRank(user.SubscriptionStatus) >= plans.TierRank(tier) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already on this plan or a higher one"})
		return
	}

	amount := plans.PriceCents(plan)
	charge, err := h.gateway.CreatePixCharge(ctx, abacatepay.CreateChargeParams{
		Amount:      amount,
		ExpiresIn:   chargeExpirySeconds,
		Description: "Assinatura " + tier,
		Customer: &abacatepay.Customer{
			Name:  user.Name,
			Email: user.Email,
		},
		Metadata: abacatepay.Metadata{ExternalID: user.ID, Plan: plan},
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create pix charge",
			slog.String("user_id", user.ID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create charge", "details": gatewayMessage(err)})
		return
	}

	payment := &billing.Payment{
		UserID:      user.ID,
		ChargeID:    charge.ID,
		Plan:        plan,
		AmountCents: amount,
		Status:      billing.PaymentPending,
	}
	if err := h.payments.CreatePayment(ctx, payment); err != nil {
		// The charge exists at the gateway; the webhook still carries the metadata.
		h.logger.ErrorContext(ctx, "failed to record payment",
			slog.String("charge_id", charge.ID), slog.Any("error", err))
	}

	c.JSON(http.StatusOK, gin.H{
		"charge_id":      charge.ID,
		"br_code":        charge.BrCode,
		"br_code_base64": charge.BrCodeBase64,
		"status":         charge.Status,
		"expires_at":     charge.ExpiresAt,
		"amount_cents":   amount,
	})
}
