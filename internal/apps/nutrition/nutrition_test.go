package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidBarcode(t *testing.T) {
	assert.True(t, ValidBarcode("5901234123457")) // EAN-13
	assert.True(t, ValidBarcode("12345678"))      // EAN-8
	assert.True(t, ValidBarcode("12345678901234"))

	assert.False(t, ValidBarcode("abc123"))
	assert.False(t, ValidBarcode("123"))
	assert.False(t, ValidBarcode("123456789012345"))
	assert.False(t, ValidBarcode("1234567 90123"))
	assert.False(t, ValidBarcode(""))
}

func TestClampCalorieTarget(t *testing.T) {
	assert.Equal(t, 2000, clampCalorieTarget(0))
	assert.Equal(t, 1000, clampCalorieTarget(500))
	assert.Equal(t, 5000, clampCalorieTarget(9000))
	assert.Equal(t, 2200, clampCalorieTarget(2200))
}

func TestFallbackMealPlan(t *testing.T) {
	plan := fallbackMealPlan(2000)

	require.Len(t, plan.Days, 7)
	assert.True(t, plan.Fallback)
	assert.Equal(t, 2000, plan.CalorieTarget)
	assert.Equal(t, "Monday", plan.Days[0].Day)
	assert.Equal(t, "Sunday", plan.Days[6].Day)

	for _, day := range plan.Days {
		require.Len(t, day.Meals, 4)
		dayTotal := 0
		for _, m := range day.Meals {
			dayTotal += m.Calories
			assert.NotEmpty(t, m.Name)
		}
		// Shares sum to 1.0 so integer truncation can only lose a few kcal.
		assert.InDelta(t, 2000, dayTotal, 4)
	}

	breakfast := plan.Days[0].Meals[0]
	assert.Equal(t, "breakfast", breakfast.MealType)
	assert.Equal(t, 400, breakfast.Calories)
	// 20% of calories from protein at 4 kcal/g.
	assert.Equal(t, 20.0, breakfast.ProteinG)
	assert.Equal(t, 50.0, breakfast.CarbsG)
	assert.InDelta(t, 13.3, breakfast.FatG, 0.1)
}

func TestFallbackRecipe(t *testing.T) {
	recipe := fallbackRecipe([]string{"chicken", "rice"})

	assert.True(t, recipe.Fallback)
	assert.Contains(t, recipe.Name, "chicken")
	assert.Equal(t, []string{"chicken", "rice"}, recipe.Ingredients)
	assert.NotEmpty(t, recipe.Instructions)

	empty := fallbackRecipe(nil)
	assert.Contains(t, empty.Name, "your ingredients")
}

func TestParseMealPlanRejectsShortWeeks(t *testing.T) {
	raw := json.RawMessage(`{"days": [{"day": "Monday", "meals": [{"name": "Toast", "meal_type": "breakfast", "calories": 300}]}]}`)
	_, err := parseMealPlan(raw, 2000)
	assert.Error(t, err)

	_, err = parseMealPlan(json.RawMessage(`not json`), 2000)
	assert.Error(t, err)
}

func TestParseMealPlanAcceptsFullWeek(t *testing.T) {
	days := make([]PlannedDay, 7)
	for i := range days {
		days[i] = PlannedDay{
			Day:   weekdays[i],
			Meals: []PlannedMeal{{Name: "Meal", MealType: "lunch", Calories: 600}},
		}
	}
	raw, err := json.Marshal(MealPlan{Days: days})
	require.NoError(t, err)

	plan, err := parseMealPlan(raw, 1800)
	require.NoError(t, err)
	assert.Equal(t, 1800, plan.CalorieTarget)
	assert.False(t, plan.Fallback)
	assert.Len(t, plan.Days, 7)
}
