package billing

import (
	"context"
	"log/slog"
	"time"

	"nutrition-app/internal/domain/billing"
	"nutrition-app/internal/domain/subscription"
	"nutrition-app/internal/domain/users"
	"nutrition-app/internal/infra/abacatepay"
)

// Gateway is the subset of the Abacate Pay client used by billing routes.
type Gateway interface {
	Configured() bool
	CheckPixCharge(ctx context.Context, chargeID string) (*abacatepay.Charge, error)
	CreatePixCharge(ctx context.Context, params abacatepay.CreateChargeParams) (*abacatepay.Charge, error)
}

// StatusCache holds terminal charge statuses. It is optional.
type StatusCache interface {
	Get(ctx context.Context, chargeID string) (string, bool, error)
	Set(ctx context.Context, chargeID, status string) error
}

type Subscriptions interface {
	Update(ctx context.Context, userID, tier string) error
	CurrentTier(ctx context.Context, userID string) (string, error)
	ReconcilePolled(ctx context.Context, userID, plan, gatewayStatus string) (subscription.Outcome, error)
}

type Payments interface {
	CreatePayment(ctx context.Context, p *billing.Payment) error
	FindPaymentByChargeID(ctx context.Context, chargeID string) (*billing.Payment, error)
	MarkPaymentPaid(ctx context.Context, chargeID string, paidAt time.Time) error
	ListPaymentsByUser(ctx context.Context, userID string) ([]billing.Payment, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
}

type Handler struct {
	gateway  Gateway
	cache    StatusCache
	subs     Subscriptions
	payments Payments
	users    UserFinder
	logger   *slog.Logger
	now      func() time.Time
}

type Options struct {
	Gateway       Gateway
	Cache         StatusCache
	Subscriptions Subscriptions
	Payments      Payments
	Users         UserFinder
	Logger        *slog.Logger
}

func NewHandler(opts Options) *Handler {
	return &Handler{
		gateway:  opts.Gateway,
		cache:    opts.Cache,
		subs:     opts.Subscriptions,
		payments: opts.Payments,
		users:    opts.Users,
		logger:   opts.Logger.With(slog.String("component", "billing")),
		now:      time.Now,
	}
}
