package billing

import "time"

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Payment is the local record of a gateway charge opened at checkout.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	ChargeID    string     `gorm:"column:charge_id;not null;uniqueIndex:idx_payments_charge_id" json:"charge_id"`
	Plan        string     `gorm:"type:varchar(32);not null" json:"plan"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `gorm:"type:varchar(32);not null;default:'pending'" json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
