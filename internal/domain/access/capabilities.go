package access

import "nutrition-app/internal/domain/plans"

var (
	freeCaps    = []Capability{CapMealLog, CapHydration, CapWeight}
	premiumCaps = append(append([]Capability{}, freeCaps...), CapPhotoAnalysis, CapAIMealPlan)
	proCaps     = append(append([]Capability{}, premiumCaps...), CapRooms, CapAssignPlans)
)

// CapabilitiesFor returns what a tier unlocks. Each tier includes everything
// below it.
func CapabilitiesFor(tier string) []Capability {
	var src []Capability
	switch plans.NormalizeTier(tier) {
	case plans.TierProfessional:
		src = proCaps
	case plans.TierPremium:
		src = premiumCaps
	default:
		src = freeCaps
	}
	return append([]Capability(nil), src...)
}

func Has(tier string, c Capability) bool {
	for _, have := range CapabilitiesFor(tier) {
		if have == c {
			return true
		}
	}
	return false
}
