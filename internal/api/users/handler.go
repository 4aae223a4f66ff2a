package users

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nutrition-app/internal/app/http/middleware"
	"nutrition-app/internal/domain/access"
	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/users"
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
	UpdateName(ctx context.Context, id, name string) error
}

type PaymentLister interface {
	ListPaymentsByUser(ctx context.Context, userID string) ([]billing.Payment, error)
}

type Handler struct {
	users    UserStore
	payments PaymentLister
	logger   *slog.Logger
}

func NewHandler(store UserStore, payments PaymentLister, logger *slog.Logger) *Handler {
	return &Handler{users: store, payments: payments, logger: logger}
}

func (h *Handler) GetCurrentUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var last *PaymentDTO
	if h.payments != nil {
		payments, err := h.payments.ListPaymentsByUser(ctx, userID)
		if err != nil {
			h.logger.WarnContext(ctx, "failed to load payments for /me", slog.Any("error", err))
		} else if len(payments) > 0 {
			last = buildPaymentDTO(payments[0])
		}
	}

	policy := access.ComputePolicy(*user)

	c.JSON(http.StatusOK, MeResponse{
		User: UserDTO{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Role:         user.Role,
			AuthProvider: user.AuthProvider,
			CreatedAt:    user.CreatedAt,
		},
		Billing: BillingDTO{
			Tier:        policy.Tier,
			LastPayment: last,
		},
		Access: AccessDTO{
			Paid:         policy.Paid,
			Capabilities: policy.Strings(),
		},
	})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Name string `json:"name" binding:"required,max=120"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid name"})
		return
	}

	name := strings.TrimSpace(body.Name)
	if err := h.users.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "name": name})
}

func buildPaymentDTO(p billing.Payment) *PaymentDTO {
	return &PaymentDTO{
		ChargeID:    p.ChargeID,
		Plan:        p.Plan,
		AmountCents: p.AmountCents,
		Status:      p.Status,
		PaidAt:      p.PaidAt,
		CreatedAt:   p.CreatedAt,
	}
}
