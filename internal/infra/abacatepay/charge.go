package abacatepay

import "strings"

// Gateway charge statuses.
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusExpired   = "EXPIRED"
	StatusCancelled = "CANCELLED"
	StatusRefunded  = "REFUNDED"
)

// Metadata is what checkout attaches to a charge so that payments can be
// traced back to a user and a plan.
type Metadata struct {
	ExternalID string `json:"externalId"`
	Plan       string `json:"plan"`
}

type Charge struct {
	ID           string    `json:"id"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	DevMode      bool      `json:"devMode"`
	BrCode       string    `json:"brCode,omitempty"`
	BrCodeBase64 string    `json:"brCodeBase64,omitempty"`
	ExpiresAt    string    `json:"expiresAt,omitempty"`
	Metadata     *Metadata `json:"metadata,omitempty"`
}

type Customer struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Cellphone string `json:"cellphone,omitempty"`
	TaxID     string `json:"taxId,omitempty"`
}

type CreateChargeParams struct {
	Amount      int64     `json:"amount"`
	ExpiresIn   int64     `json:"expiresIn,omitempty"`
	Description string    `json:"description,omitempty"`
	Customer    *Customer `json:"customer,omitempty"`
	Metadata    Metadata  `json:"metadata"`
}

// IsTerminalStatus reports whether a charge can no longer change state.
func IsTerminalStatus(status string) bool {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case StatusPaid, StatusExpired, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}
