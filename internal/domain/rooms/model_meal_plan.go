package rooms

import "time"

const (
	PlanSourceProfessional = "professional"
	PlanSourceAI           = "ai"
)

// MealPlan is a plan a professional assigned to a patient inside a room.
type MealPlan struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	RoomID         string `gorm:"type:uuid;not null;index" json:"room_id"`
	ProfessionalID string `gorm:"type:uuid;not null;index" json:"professional_id"`
	PatientID      string `gorm:"type:uuid;not null;index" json:"patient_id"`
	Title          string `gorm:"type:varchar(200);not null" json:"title"`
	Content        string `gorm:"type:text;not null" json:"content"`
	Source         string `gorm:"type:varchar(20);not null;default:'professional'" json:"source"`

	StartsOn *time.Time `json:"starts_on,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
