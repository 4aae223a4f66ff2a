package tracking

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

type MealLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;index:idx_meal_logs_user_eaten,priority:1" json:"user_id"`
	Name     string    `gorm:"type:varchar(200);not null" json:"name"`
	MealType string    `gorm:"type:varchar(20);not null;default:'snack'" json:"meal_type"`
	Calories int       `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatG     float64   `json:"fat_g"`
	Notes    string    `gorm:"type:text" json:"notes"`
	EatenAt  time.Time `gorm:"not null;index:idx_meal_logs_user_eaten,priority:2" json:"eaten_at"`

	CreatedAt time.Time `json:"created_at"`
}

type HydrationLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;index:idx_hydration_user_logged,priority:1" json:"user_id"`
	AmountML int       `gorm:"not null" json:"amount_ml"`
	LoggedAt time.Time `gorm:"not null;index:idx_hydration_user_logged,priority:2" json:"logged_at"`

	CreatedAt time.Time `json:"created_at"`
}

type WeightLog struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;index" json:"user_id"`
	WeightKG float64   `gorm:"not null" json:"weight_kg"`
	LoggedAt time.Time `gorm:"not null" json:"logged_at"`

	CreatedAt time.Time `json:"created_at"`
}

// DayTotals is the per-day macro summary shown next to the meal list.
type DayTotals struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func SumMeals(meals []MealLog) DayTotals {
	var t DayTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.ProteinG += m.ProteinG
		t.CarbsG += m.CarbsG
		t.FatG += m.FatG
	}
	return t
}

func SumHydration(entries []HydrationLog) int {
	total := 0
	for _, e := range entries {
		total += e.AmountML
	}
	return total
}

func IsMealType(s string) bool {
	switch s {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	default:
		return false
	}
}
