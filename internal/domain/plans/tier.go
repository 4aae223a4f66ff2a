package plans

import "strings"

// Tier constants (single source of truth)
const (
	TierFree         = "free"
	TierPremium      = "premium"
	TierProfessional = "professional"
)

// Plan names as they travel in gateway charge metadata.
const (
	PlanPremium      = "PREMIUM"
	PlanProfessional = "PROFESSIONAL"
)

var planTiers = map[string]string{
	PlanPremium:      TierPremium,
	PlanProfessional: TierProfessional,
}

// TierForPlan maps a charge's plan name to a subscription tier.
// Unrecognised names map to TierFree with ok=false; callers must not write in that case.
func TierForPlan(plan string) (tier string, ok bool) {
	tier, ok = planTiers[strings.ToUpper(strings.TrimSpace(plan))]
	if !ok {
		return TierFree, false
	}
	return tier, true
}

// IsKnownPlan reports whether a plan name can be sold.
func IsKnownPlan(plan string) bool {
	_, ok := TierForPlan(plan)
	return ok
}

// NormalizeTier returns one of the tier constants; unknown values collapse to free.
func NormalizeTier(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case TierPremium:
		return TierPremium
	case TierProfessional:
		return TierProfessional
	default:
		return TierFree
	}
}

func IsPaidTier(tier string) bool {
	return NormalizeTier(tier) != TierFree
}

func TierRank(tier string) int {
	switch NormalizeTier(tier) {
	case TierProfessional:
		return 2
	case TierPremium:
		return 1
	default:
		return 0
	}
}

// PriceCents is what a checkout charges for one billing period of a plan.
func PriceCents(plan string) int64 {
	switch strings.ToUpper(strings.TrimSpace(plan)) {
	case PlanProfessional:
		return 9990
	case PlanPremium:
		return 2990
	default:
		return 0
	}
}
