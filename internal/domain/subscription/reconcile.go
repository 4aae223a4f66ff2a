package subscription

import (
	"context"
	"strings"

	"nutrition-app/internal/domain/plans"
)

// Outcome describes what a reconciliation did to the user record.
type Outcome string

const (
	OutcomeUpdated     Outcome = "updated"
	OutcomeUnknownPlan Outcome = "unknown_plan"
	OutcomeAlreadyPaid Outcome = "already_paid"
	OutcomeNotPaid     Outcome = "not_paid"
)

// ApplyPaidCharge is the webhook path: a confirmed payment writes the mapped
// tier without consulting the current one. Redelivery writes the same value.
func (u *Updater) ApplyPaidCharge(ctx context.Context, userID, plan string) (Outcome, error) {
	tier, ok := plans.TierForPlan(plan)
	if !ok {
		return OutcomeUnknownPlan, nil
	}
	if err := u.Update(ctx, userID, tier); err != nil {
		return "", err
	}
	return OutcomeUpdated, nil
}

// ReconcilePolled is the poller path. It only writes when the gateway says the
// charge is paid and the user is not on a paid tier yet, so it never replaces
// a paid tier with another one.
//
// The read and the write are not atomic. A concurrent webhook for the same
// charge computes the same tier, so interleavings converge.
func (u *Updater) ReconcilePolled(ctx context.Context, userID, plan, gatewayStatus string) (Outcome, error) {
	if !IsPaidStatus(gatewayStatus) {
		return OutcomeNotPaid, nil
	}

	current, err := u.CurrentTier(ctx, userID)
	if err != nil {
		return "", err
	}
	if plans.IsPaidTier(current) {
		return OutcomeAlreadyPaid, nil
	}

	return u.ApplyPaidCharge(ctx, userID, plan)
}

// IsPaidStatus accepts the gateway's status spelling in any case.
func IsPaidStatus(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), "paid")
}
