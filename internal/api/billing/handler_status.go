package billing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/subscription"
	"nutrition-app/internal/domain/users"
	"nutrition-app/internal/infra/abacatepay"
)

// CheckStatus handles GET /billing/status/:id. The client polls it after
// showing the QR code; a paid charge upgrades a user who is still on free
// even if the webhook has not arrived yet.
func (h *Handler) CheckStatus(c *gin.Context) {
	ctx := c.Request.Context()

	chargeID := strings.TrimSpace(c.Param("id"))
	if chargeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing charge id"})
		return
	}

	if h.gateway == nil || !h.gateway.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment gateway not configured"})
		return
	}

	if status, ok := h.cachedStatus(ctx, chargeID); ok {
		c.JSON(http.StatusOK, gin.H{"status": status})
		return
	}

	charge, err := h.gateway.CheckPixCharge(ctx, chargeID)
	if err != nil {
		h.logger.ErrorContext(ctx, "charge status check failed",
			slog.String("charge_id", chargeID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to check charge status",
			"details": gatewayMessage(err),
		})
		return
	}

	if subscription.IsPaidStatus(charge.Status) {
		if err := h.reconcile(ctx, chargeID, charge); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to update subscription",
				"details": err.Error(),
			})
			return
		}
	}

	if h.cache != nil && abacatepay.IsTerminalStatus(charge.Status) {
		if err := h.cache.Set(ctx, chargeID, charge.Status); err != nil {
			h.logger.WarnContext(ctx, "failed to cache charge status", slog.Any("error", err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": charge.Status})
}

func (h *Handler) cachedStatus(ctx context.Context, chargeID string) (string, bool) {
	if h.cache == nil {
		return "", false
	}
	status, ok, err := h.cache.Get(ctx, chargeID)
	if err != nil {
		h.logger.WarnContext(ctx, "charge status cache read failed", slog.Any("error", err))
		return "", false
	}
	return status, ok
}

// reconcile resolves the owner and plan of a paid charge and hands them to
// the poller path of the updater. Missing ownership data is logged and
// skipped; only storage errors fail the request.
func (h *Handler) reconcile(ctx context.Context, chargeID string, charge *abacatepay.Charge) error {
	userID, plan := "", ""
	if charge.Metadata != nil {
		userID, plan = charge.Metadata.ExternalID, charge.Metadata.Plan
	}

	var payment *billing.Payment
	if h.payments != nil {
		p, err := h.payments.FindPaymentByChargeID(ctx, chargeID)
		switch {
		case err == nil:
			payment = p
		case !errors.Is(err, billing.ErrPaymentNotFound):
			h.logger.WarnContext(ctx, "payment lookup failed", slog.Any("error", err))
		}
	}
	if payment != nil {
		if userID == "" {
			userID = payment.UserID
		}
		if plan == "" {
			plan = payment.Plan
		}
	}

	l := h.logger.With(slog.String("charge_id", chargeID), slog.String("user_id", userID), slog.String("plan", plan))
	if userID == "" {
		l.WarnContext(ctx, "paid charge has no owner")
		return nil
	}

	outcome, err := h.subs.ReconcilePolled(ctx, userID, plan, charge.Status)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			l.WarnContext(ctx, "paid charge for unknown user")
			return nil
		}
		l.ErrorContext(ctx, "poller reconciliation failed", slog.Any("error", err))
		return err
	}
	l.InfoContext(ctx, "poller reconciliation", slog.String("outcome", string(outcome)))

	if payment != nil && payment.Status != billing.PaymentPaid {
		if err := h.payments.MarkPaymentPaid(ctx, chargeID, h.now()); err != nil {
			l.WarnContext(ctx, "failed to mark payment paid", slog.Any("error", err))
		}
	}
	return nil
}

func gatewayMessage(err error) string {
	var apiErr *abacatepay.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
