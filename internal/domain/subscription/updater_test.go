package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
)

type memoryUsers struct {
	mu      sync.Mutex
	tiers   map[string]string
	writes  int
	failErr error
}

func newMemoryUsers(seed map[string]string) *memoryUsers {
	return &memoryUsers{tiers: seed}
}

func (m *memoryUsers) FindByID(_ context.Context, id string) (*users.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tier, ok := m.tiers[id]
	if !ok {
		return nil, users.ErrNotFound
	}
	return &users.User{ID: id, SubscriptionStatus: tier}, nil
}

func (m *memoryUsers) UpdateSubscriptionStatus(_ context.Context, id, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.tiers[id]; !ok {
		return users.ErrNotFound
	}
	m.tiers[id] = tier
	m.writes++
	return nil
}

func newTestUpdater(store UserStore) *Updater {
	return NewUpdater(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApplyPaidCharge_PremiumPlan(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	u := newTestUpdater(store)

	outcome, err := u.ApplyPaidCharge(context.Background(), "u1", "PREMIUM")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, plans.TierPremium, store.tiers["u1"])
}

func TestApplyPaidCharge_UnknownPlanLeavesFree(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	u := newTestUpdater(store)

	outcome, err := u.ApplyPaidCharge(context.Background(), "u1", "PLATINUM")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnknownPlan, outcome)
	assert.Equal(t, plans.TierFree, store.tiers["u1"])
	assert.Zero(t, store.writes)
}

func TestApplyPaidCharge_RedeliveryIsIdempotent(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	u := newTestUpdater(store)

	for i := 0; i < 2; i++ {
		_, err := u.ApplyPaidCharge(context.Background(), "u1", "PROFESSIONAL")
		require.NoError(t, err)
	}
	assert.Equal(t, plans.TierProfessional, store.tiers["u1"])
}

func TestApplyPaidCharge_OverwritesRegardlessOfCurrentTier(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierProfessional})
	u := newTestUpdater(store)

	_, err := u.ApplyPaidCharge(context.Background(), "u1", "PREMIUM")
	require.NoError(t, err)
	assert.Equal(t, plans.TierPremium, store.tiers["u1"])
}

func TestReconcilePolled_DoesNotTouchPaidTiers(t *testing.T) {
	for _, current := range []string{plans.TierPremium, plans.TierProfessional} {
		store := newMemoryUsers(map[string]string{"u1": current})
		u := newTestUpdater(store)

		outcome, err := u.ReconcilePolled(context.Background(), "u1", "PREMIUM", "PAID")
		require.NoError(t, err)
		assert.Equal(t, OutcomeAlreadyPaid, outcome)
		assert.Equal(t, current, store.tiers["u1"])
		assert.Zero(t, store.writes)
	}
}

func TestReconcilePolled_UpgradesFreeUserOnPaid(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	u := newTestUpdater(store)

	outcome, err := u.ReconcilePolled(context.Background(), "u1", "PREMIUM", "PAID")
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.Equal(t, plans.TierPremium, store.tiers["u1"])
}

func TestReconcilePolled_PendingDoesNothing(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	u := newTestUpdater(store)

	outcome, err := u.ReconcilePolled(context.Background(), "u1", "PREMIUM", "PENDING")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotPaid, outcome)
	assert.Zero(t, store.writes)
}

func TestUpdate_PropagatesStorageErrors(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	store.failErr = errors.New("connection reset")
	u := newTestUpdater(store)

	err := u.Update(context.Background(), "u1", plans.TierPremium)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.failErr)
}

func TestUpdate_UnknownUser(t *testing.T) {
	u := newTestUpdater(newMemoryUsers(map[string]string{}))

	err := u.Update(context.Background(), "missing", plans.TierPremium)
	assert.ErrorIs(t, err, users.ErrNotFound)
}

func TestConcurrentWritersConverge(t *testing.T) {
	store := newMemoryUsers(map[string]string{"u1": plans.TierFree})
	u := newTestUpdater(store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = u.ApplyPaidCharge(context.Background(), "u1", "PREMIUM")
		}()
		go func() {
			defer wg.Done()
			_, _ = u.ReconcilePolled(context.Background(), "u1", "PREMIUM", "PAID")
		}()
	}
	wg.Wait()

	assert.Equal(t, plans.TierPremium, store.tiers["u1"])
}
