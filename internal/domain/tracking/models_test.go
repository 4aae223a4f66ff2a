package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSumMeals(t *testing.T) {
	got := SumMeals([]MealLog{
		{Calories: 350, ProteinG: 20, CarbsG: 40.5, FatG: 10},
		{Calories: 150, ProteinG: 5.5, CarbsG: 10, FatG: 2},
	})
	assert.Equal(t, DayTotals{Calories: 500, ProteinG: 25.5, CarbsG: 50.5, FatG: 12}, got)
	assert.Equal(t, DayTotals{}, SumMeals(nil))
}

func TestSumHydration(t *testing.T) {
	assert.Equal(t, 750, SumHydration([]HydrationLog{{AmountML: 250}, {AmountML: 500}}))
	assert.Zero(t, SumHydration(nil))
}

func TestIsMealType(t *testing.T) {
	assert.True(t, IsMealType(MealLunch))
	assert.False(t, IsMealType("brunch"))
	assert.False(t, IsMealType("Lunch"))
}
