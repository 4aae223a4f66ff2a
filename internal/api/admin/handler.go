package admin

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
)

type UserReader interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
	List(ctx context.Context) ([]users.User, error)
}

type BillingReader interface {
	ListPayments(ctx context.Context) ([]billing.Payment, error)
	ListPaymentsByUser(ctx context.Context, userID string) ([]billing.Payment, error)
	ListWebhookLogs(ctx context.Context, limit int) ([]billing.WebhookLog, error)
}

type Handler struct {
	users   UserReader
	billing BillingReader
	now     func() time.Time
}

func NewHandler(u UserReader, b BillingReader) *Handler {
	return &Handler{users: u, billing: b, now: time.Now}
}

type AdminUser struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	AuthProvider       string    `json:"auth_provider"`
	SubscriptionStatus string    `json:"subscription_status"`
	CreatedAt          time.Time `json:"created_at"`
}

type AdminPayment struct {
	ID          uint    `json:"id"`
	UserID      string  `json:"user_id"`
	Email       string  `json:"email,omitempty"`
	ChargeID    string  `json:"charge_id"`
	Plan        string  `json:"plan"`
	AmountCents int64   `json:"amount_cents"`
	Status      string  `json:"status"`
	PaidAt      *string `json:"paid_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers         int            `json:"total_users"`
	TotalRevenueCents  int64          `json:"total_revenue_cents"`
	RecentRevenueCents int64          `json:"recent_revenue_cents"`
	UsersPerTier       map[string]int `json:"users_per_tier"`
}

const timeLayout = "2006-01-02 15:04"

func toAdminUser(u users.User) AdminUser {
	return AdminUser{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		AuthProvider:       u.AuthProvider,
		SubscriptionStatus: plans.NormalizeTier(u.SubscriptionStatus),
		CreatedAt:          u.CreatedAt,
	}
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	list, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	out := make([]AdminUser, 0, len(list))
	for _, u := range list {
		out = append(out, toAdminUser(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return
	}

	payments, err := h.billing.ListPaymentsByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     toAdminUser(*user),
		"payments": toAdminPayments(payments, nil),
	})
}

func (h *Handler) ListAllPayments(c *gin.Context) {
	ctx := c.Request.Context()

	payments, err := h.billing.ListPayments(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	emails := map[string]string{}
	if list, err := h.users.List(ctx); err == nil {
		for _, u := range list {
			emails[u.ID] = u.Email
		}
	}

	c.JSON(http.StatusOK, toAdminPayments(payments, emails))
}

func toAdminPayments(payments []billing.Payment, emails map[string]string) []AdminPayment {
	out := make([]AdminPayment, 0, len(payments))
	for _, p := range payments {
		var paidAt *string
		if p.PaidAt != nil {
			s := p.PaidAt.Format(timeLayout)
			paidAt = &s
		}
		out = append(out, AdminPayment{
			ID:          p.ID,
			UserID:      p.UserID,
			Email:       emails[p.UserID],
			ChargeID:    p.ChargeID,
			Plan:        p.Plan,
			AmountCents: p.AmountCents,
			Status:      p.Status,
			PaidAt:      paidAt,
			CreatedAt:   p.CreatedAt.Format(timeLayout),
		})
	}
	return out
}

// ListWebhookLogs accepts ?limit=N; the repository caps it.
func (h *Handler) ListWebhookLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.billing.ListWebhookLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load webhook logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *Handler) GetAdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.users.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	payments, err := h.billing.ListPayments(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	stats := AdminStats{
		TotalUsers: len(list),
		UsersPerTier: map[string]int{
			plans.TierFree:         0,
			plans.TierPremium:      0,
			plans.TierProfessional: 0,
		},
	}
	for _, u := range list {
		stats.UsersPerTier[plans.NormalizeTier(u.SubscriptionStatus)]++
	}

	thirtyDaysAgo := h.now().AddDate(0, 0, -30)
	for _, p := range payments {
		if p.Status != billing.PaymentPaid {
			continue
		}
		stats.TotalRevenueCents += p.AmountCents
		if p.CreatedAt.After(thirtyDaysAgo) {
			stats.RecentRevenueCents += p.AmountCents
		}
	}

	c.JSON(http.StatusOK, stats)
}
