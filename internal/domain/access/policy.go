package access

import (
	"nutrition-app/internal/domain/plans"
	"nutrition-app/internal/domain/users"
)

type Policy struct {
	Tier         string
	Paid         bool
	Capabilities []Capability
}

func ComputePolicy(u users.User) Policy {
	tier := plans.NormalizeTier(u.SubscriptionStatus)
	return Policy{
		Tier:         tier,
		Paid:         plans.IsPaidTier(tier),
		Capabilities: CapabilitiesFor(tier),
	}
}

// Strings is the JSON-friendly form of the capability list.
func (p Policy) Strings() []string {
	out := make([]string, 0, len(p.Capabilities))
	for _, c := range p.Capabilities {
		out = append(out, string(c))
	}
	return out
}
