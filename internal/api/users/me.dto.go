package users

import "time"

type MeResponse struct {
	User    UserDTO    `json:"user"`
	Billing BillingDTO `json:"billing"`
	Access  AccessDTO  `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	AuthProvider string    `json:"auth_provider"`
	CreatedAt    time.Time `json:"created_at"`
}

/* ---------- BILLING ---------- */

type BillingDTO struct {
	Tier        string      `json:"tier"`
	LastPayment *PaymentDTO `json:"last_payment"`
}

type PaymentDTO struct {
	ChargeID    string     `json:"charge_id"`
	Plan        string     `json:"plan"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	Paid         bool     `json:"paid"`
	Capabilities []string `json:"capabilities"`
}
