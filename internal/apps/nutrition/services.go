package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/ai"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/gorm"
)

// StreakRecorder receives a notification whenever a meal is logged.
type StreakRecorder interface {
	RecordActivity(userID uuid.UUID)
}

const mealPlanSystemPrompt = `You are a meal planning assistant.
Build a realistic 7-day meal plan hitting the given daily calorie target.
Respect the requested diet and excluded ingredients.
Always answer through the submit_meal_plan function.`

const recipeSystemPrompt = `You are a recipe assistant.
Create one practical recipe using the given ingredients plus common pantry staples.
Always answer through the submit_recipe function.`

var mealPlanTool = ai.Tool{
	Type: "function",
	Function: ai.ToolFunction{
		Name:        "submit_meal_plan",
		Description: "Submit the 7-day meal plan",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"days": {
					"type": "array",
					"items": {
						"type": "object",
						"properties": {
							"day": {"type": "string"},
							"meals": {
								"type": "array",
								"items": {
									"type": "object",
									"properties": {
										"name": {"type": "string"},
										"meal_type": {"type": "string", "enum": ["breakfast", "lunch", "dinner", "snack"]},
										"calories": {"type": "integer"},
										"protein_g": {"type": "number"},
										"carbs_g": {"type": "number"},
										"fat_g": {"type": "number"}
									},
									"required": ["name", "meal_type", "calories"]
								}
							}
						},
						"required": ["day", "meals"]
					}
				}
			},
			"required": ["days"]
		}`),
	},
}

var recipeTool = ai.Tool{
	Type: "function",
	Function: ai.ToolFunction{
		Name:        "submit_recipe",
		Description: "Submit the recipe",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string"},
				"ingredients": {"type": "array", "items": {"type": "string"}},
				"instructions": {"type": "array", "items": {"type": "string"}},
				"calories": {"type": "integer"},
				"prep_minutes": {"type": "integer"}
			},
			"required": ["name", "ingredients", "instructions"]
		}`),
	},
}

type Service struct {
	db      *gorm.DB
	ai      *ai.Client
	food    *FoodClient
	streaks StreakRecorder
}

func NewService(db *gorm.DB, aiClient *ai.Client, food *FoodClient, streaks StreakRecorder) *Service {
	return &Service{db: db, ai: aiClient, food: food, streaks: streaks}
}

func (s *Service) CreateMeal(userID uuid.UUID, req CreateMealRequest) (*Meal, error) {
	meal := Meal{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       req.Name,
		MealType:   req.MealType,
		Calories:   req.Calories,
		ProteinG:   req.ProteinG,
		CarbsG:     req.CarbsG,
		FatG:       req.FatG,
		OccurredAt: occurredOrNow(req.OccurredAt),
	}
	if err := s.db.Create(&meal).Error; err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	if s.streaks != nil {
		s.streaks.RecordActivity(userID)
	}
	return &meal, nil
}

func (s *Service) ListMeals(userID uuid.UUID, days, page, limit int) ([]Meal, int64, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)

	query := s.db.Model(&Meal{}).Scopes(scope.OwnedBy(userID)).
		Where("occurred_at >= ?", since)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count meals: %w", err)
	}

	var meals []Meal
	err := query.Order("occurred_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&meals).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, total, nil
}

func (s *Service) DeleteMeal(userID, mealID uuid.UUID) error {
	res := s.db.Scopes(scope.OwnedBy(userID)).Where("id = ?", mealID).Delete(&Meal{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LookupBarcode validates the barcode before touching the network.
func (s *Service) LookupBarcode(ctx context.Context, barcode string) (*ProductInfo, error) {
	return s.food.Lookup(ctx, barcode)
}

// GenerateMealPlan asks the model for a 7-day plan. Any failure, from the
// external call through schema validation, substitutes the deterministic
// fallback rotation rather than surfacing an error.
func (s *Service) GenerateMealPlan(ctx context.Context, req MealPlanRequest) (*MealPlan, error) {
	target := clampCalorieTarget(req.CalorieTarget)

	prompt := fmt.Sprintf("Daily calorie target: %d kcal.", target)
	if req.Diet != "" {
		prompt += " Diet: " + req.Diet + "."
	}
	if len(req.Exclusions) > 0 {
		prompt += " Exclude: " + strings.Join(req.Exclusions, ", ") + "."
	}

	raw, err := s.ai.CompleteWithTool(ctx, mealPlanSystemPrompt, prompt, mealPlanTool)
	if err != nil {
		slog.Warn("meal plan generation failed, using fallback", "error", err)
		return fallbackMealPlan(target), nil
	}

	plan, err := parseMealPlan(raw, target)
	if err != nil {
		slog.Warn("meal plan response unusable, using fallback", "error", err)
		return fallbackMealPlan(target), nil
	}
	return plan, nil
}

// GenerateRecipe follows the same fallback policy as GenerateMealPlan.
func (s *Service) GenerateRecipe(ctx context.Context, ingredients []string) (*Recipe, error) {
	prompt := "Ingredients: " + strings.Join(ingredients, ", ")

	raw, err := s.ai.CompleteWithTool(ctx, recipeSystemPrompt, prompt, recipeTool)
	if err != nil {
		slog.Warn("recipe generation failed, using fallback", "error", err)
		return fallbackRecipe(ingredients), nil
	}

	var recipe Recipe
	if err := json.Unmarshal(raw, &recipe); err != nil || recipe.Name == "" || len(recipe.Instructions) == 0 {
		slog.Warn("recipe response unusable, using fallback", "error", err)
		return fallbackRecipe(ingredients), nil
	}
	return &recipe, nil
}

// parseMealPlan validates the tool-call arguments. A plan without exactly
// seven non-empty days is rejected so the fallback can take over.
func parseMealPlan(raw json.RawMessage, target int) (*MealPlan, error) {
	var plan MealPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("malformed meal plan: %w", err)
	}
	if len(plan.Days) != 7 {
		return nil, fmt.Errorf("expected 7 days, got %d", len(plan.Days))
	}
	for _, d := range plan.Days {
		if len(d.Meals) == 0 {
			return nil, errors.New("meal plan contains an empty day")
		}
	}
	plan.CalorieTarget = target
	return &plan, nil
}

func occurredOrNow(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
