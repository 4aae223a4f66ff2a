package billingwebhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/subscription"
	"nutrition-app/internal/domain/users"
	"nutrition-app/internal/infra/abacatepay"
)

const maxBodyBytes = 65536

const EventBillingPaid = "billing.paid"

// PaidChargeApplier writes the tier for a confirmed payment.
type PaidChargeApplier interface {
	ApplyPaidCharge(ctx context.Context, userID, plan string) (subscription.Outcome, error)
}

// Ledger is the part of the billing repository the receiver touches.
type Ledger interface {
	MarkPaymentPaid(ctx context.Context, chargeID string, paidAt time.Time) error
	AppendWebhookLog(ctx context.Context, l *billing.WebhookLog) error
}

type Handler struct {
	secret  string
	updater PaidChargeApplier
	ledger  Ledger
	logger  *slog.Logger
	now     func() time.Time
}

func NewHandler(secret string, updater PaidChargeApplier, ledger Ledger, logger *slog.Logger) *Handler {
	return &Handler{
		secret:  secret,
		updater: updater,
		ledger:  ledger,
		logger:  logger.With(slog.String("component", "billing_webhook")),
		now:     time.Now,
	}
}

type Event struct {
	ID      string    `json:"id"`
	Event   string    `json:"event"`
	DevMode bool      `json:"devMode"`
	Data    EventData `json:"data"`
}

type EventData struct {
	PixQrCode *abacatepay.Charge `json:"pixQrCode"`
}

// Receive handles POST /webhooks/abacatepay.
func (h *Handler) Receive(c *gin.Context) {
	ctx := c.Request.Context()

	// Fail closed before touching the body.
	if h.secret == "" {
		h.logger.ErrorContext(ctx, "webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	payload, err := readRawBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request body"})
		return
	}

	signature := c.GetHeader(abacatepay.SignatureHeader)
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature"})
		return
	}
	if !abacatepay.VerifySignature(payload, signature, h.secret) {
		h.logger.WarnContext(ctx, "webhook signature mismatch")
		c.JSON(http.StatusForbidden, gin.H{"error": "Signature verification failed"})
		return
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		h.audit(ctx, "", payload, billing.WebhookFailed, "malformed payload: "+err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse event"})
		return
	}

	switch event.Event {
	case EventBillingPaid:
		status, err := h.handleBillingPaid(ctx, event)
		if err != nil {
			h.audit(ctx, event.Event, payload, billing.WebhookFailed, err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
			return
		}
		h.audit(ctx, event.Event, payload, status.logStatus, status.details)
		c.JSON(http.StatusOK, gin.H{"status": status.response})

	default:
		// Acknowledge unknown events to avoid retries
		h.audit(ctx, event.Event, payload, billing.WebhookIgnored, "unhandled event kind")
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

type result struct {
	response  string
	logStatus string
	details   string
}

func acknowledged(details string) result {
	return result{response: "ignored", logStatus: billing.WebhookIgnored, details: details}
}

// handleBillingPaid returns an error only for failures worth a gateway retry.
func (h *Handler) handleBillingPaid(ctx context.Context, event Event) (result, error) {
	charge := event.Data.PixQrCode
	if charge == nil || charge.Metadata == nil || charge.Metadata.ExternalID == "" {
		return acknowledged("missing metadata.externalId"), nil
	}
	userID := charge.Metadata.ExternalID
	plan := charge.Metadata.Plan
	l := h.logger.With(slog.String("user_id", userID), slog.String("plan", plan), slog.String("charge_id", charge.ID))

	outcome, err := h.updater.ApplyPaidCharge(ctx, userID, plan)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			l.WarnContext(ctx, "paid charge for unknown user")
			return acknowledged("unknown user"), nil
		}
		l.ErrorContext(ctx, "failed to apply paid charge", slog.Any("error", err))
		return result{}, err
	}
	if outcome == subscription.OutcomeUnknownPlan {
		l.WarnContext(ctx, "paid charge with unrecognised plan")
		return acknowledged("unrecognised plan"), nil
	}

	if charge.ID != "" {
		if err := h.ledger.MarkPaymentPaid(ctx, charge.ID, h.now()); err != nil && !errors.Is(err, billing.ErrPaymentNotFound) {
			l.WarnContext(ctx, "failed to mark payment paid", slog.Any("error", err))
		}
	}

	l.InfoContext(ctx, "subscription activated from webhook")
	return result{response: "received", logStatus: billing.WebhookProcessed, details: string(outcome)}, nil
}

// audit is best effort; a failed log write never changes the response.
func (h *Handler) audit(ctx context.Context, event string, payload []byte, status, details string) {
	entry := &billing.WebhookLog{
		Event:   event,
		Payload: string(payload),
		Status:  status,
		Details: details,
	}
	if err := h.ledger.AppendWebhookLog(ctx, entry); err != nil {
		h.logger.WarnContext(ctx, "failed to write webhook log", slog.Any("error", err))
	}
}

func readRawBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
