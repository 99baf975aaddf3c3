package nutrition

const (
	minCalorieTarget     = 1000
	maxCalorieTarget     = 5000
	defaultCalorieTarget = 2000
)

// Daily calorie share per meal slot.
var mealShares = []struct {
	slot  string
	share float64
}{
	{"breakfast", 0.20},
	{"lunch", 0.40},
	{"dinner", 0.30},
	{"snack", 0.10},
}

// Macro split by calories: 20% protein, 50% carbs, 30% fat.
const (
	proteinShare = 0.20
	carbsShare   = 0.50
	fatShare     = 0.30
)

var weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Canned rotation used when the model response cannot be used. Indexed by
// day, one name per slot.
var cannedMeals = [7][4]string{
	{"Oatmeal with berries", "Grilled chicken salad", "Salmon with rice", "Greek yogurt"},
	{"Scrambled eggs on toast", "Turkey wrap", "Beef stir-fry", "Apple with peanut butter"},
	{"Greek yogurt with granola", "Lentil soup with bread", "Chicken pasta", "Mixed nuts"},
	{"Banana smoothie bowl", "Tuna sandwich", "Pork with roasted vegetables", "Cottage cheese"},
	{"Avocado toast", "Quinoa bowl", "Baked cod with potatoes", "Dark chocolate square"},
	{"Pancakes with fruit", "Chicken caesar salad", "Vegetable curry with rice", "Trail mix"},
	{"Veggie omelette", "Burrito bowl", "Turkey meatballs with pasta", "Hummus with carrots"},
}

// clampCalorieTarget applies the safe range; zero means "use the default".
func clampCalorieTarget(target int) int {
	if target == 0 {
		return defaultCalorieTarget
	}
	if target < minCalorieTarget {
		return minCalorieTarget
	}
	if target > maxCalorieTarget {
		return maxCalorieTarget
	}
	return target
}

// fallbackMealPlan builds the deterministic 7-day rotation scaled to the
// calorie target. Protein and carbs count 4 kcal/g, fat 9 kcal/g.
func fallbackMealPlan(calorieTarget int) *MealPlan {
	plan := &MealPlan{CalorieTarget: calorieTarget, Fallback: true}

	for i, day := range weekdays {
		d := PlannedDay{Day: day}
		for j, ms := range mealShares {
			calories := int(float64(calorieTarget) * ms.share)
			d.Meals = append(d.Meals, PlannedMeal{
				Name:     cannedMeals[i][j],
				MealType: ms.slot,
				Calories: calories,
				ProteinG: round1(float64(calories) * proteinShare / 4),
				CarbsG:   round1(float64(calories) * carbsShare / 4),
				FatG:     round1(float64(calories) * fatShare / 9),
			})
		}
		plan.Days = append(plan.Days, d)
	}
	return plan
}

// fallbackRecipe is the canned template substituted on a failed generation.
func fallbackRecipe(ingredients []string) *Recipe {
	steps := []string{
		"Prepare and chop all ingredients.",
		"Heat a pan over medium heat with a little oil.",
		"Cook the main ingredients until done, about 10 minutes.",
		"Season to taste and combine everything.",
		"Serve warm.",
	}
	return &Recipe{
		Name:         "Simple skillet with " + firstOr(ingredients, "your ingredients"),
		Ingredients:  ingredients,
		Instructions: steps,
		Calories:     450,
		PrepMinutes:  25,
		Fallback:     true,
	}
}

func firstOr(items []string, fallback string) string {
	if len(items) > 0 && items[0] != "" {
		return items[0]
	}
	return fallback
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
