package plans

import "testing"

func TestTierForPlan(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "PREMIUM", want: TierPremium, wantOK: true},
		{in: "premium", want: TierPremium, wantOK: true},
		{in: " PROFESSIONAL ", want: TierProfessional, wantOK: true},
		{in: "GOLD", want: TierFree, wantOK: false},
		{in: "", want: TierFree, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := TierForPlan(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("TierForPlan(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTierRank(t *testing.T) {
	if TierRank(TierFree) >= TierRank(TierPremium) {
		t.Fatalf("expected premium to outrank free")
	}
	if TierRank(TierPremium) >= TierRank(TierProfessional) {
		t.Fatalf("expected professional to outrank premium")
	}
}

func TestIsPaidTier(t *testing.T) {
	for _, tier := range []string{TierPremium, TierProfessional, "PREMIUM"} {
		if !IsPaidTier(tier) {
			t.Fatalf("expected %q to be paid", tier)
		}
	}
	for _, tier := range []string{TierFree, "", "unknown"} {
		if IsPaidTier(tier) {
			t.Fatalf("expected %q to be unpaid", tier)
		}
	}
}
