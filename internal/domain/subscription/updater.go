package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
)

// UserStore is the slice of the user repository the updater needs.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*users.User, error)
	UpdateSubscriptionStatus(ctx context.Context, id, tier string) error
}

// Updater is the single writer of users.subscription_status.
// It holds no state of its own and is safe to share between requests.
type Updater struct {
	users  UserStore
	logger *slog.Logger
}

func NewUpdater(store UserStore, logger *slog.Logger) *Updater {
	return &Updater{users: store, logger: logger}
}

// Update overwrites the stored tier. It does not look at the current value.
func (u *Updater) Update(ctx context.Context, userID, tier string) error {
	if userID == "" {
		return errors.New("user id is required")
	}
	tier = plans.NormalizeTier(tier)

	if err := u.users.UpdateSubscriptionStatus(ctx, userID, tier); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update subscription for user %s: %w", userID, err)
	}

	u.logger.InfoContext(ctx, "subscription updated",
		slog.String("user_id", userID),
		slog.String("tier", tier))
	return nil
}

// CurrentTier returns the stored tier for a user.
func (u *Updater) CurrentTier(ctx context.Context, userID string) (string, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return plans.NormalizeTier(user.SubscriptionStatus), nil
}
