package billing

import "time"

const (
	WebhookProcessed = "processed"
	WebhookIgnored   = "ignored"
	WebhookFailed    = "failed"
)

// WebhookLog is an append-only audit trail of gateway deliveries.
// Nothing reads it back to make a decision.
type WebhookLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Event     string    `gorm:"type:varchar(100);index" json:"event"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	Status    string    `gorm:"type:varchar(20);not null;index" json:"status"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
