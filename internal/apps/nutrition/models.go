package nutrition

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Meal struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	Name       string         `gorm:"size:200;not null" json:"name"`
	MealType   string         `gorm:"size:20" json:"meal_type"`
	Calories   int            `gorm:"not null" json:"calories"`
	ProteinG   float64        `json:"protein_g"`
	CarbsG     float64        `json:"carbs_g"`
	FatG       float64        `json:"fat_g"`
	OccurredAt time.Time      `gorm:"index" json:"occurred_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// --- DTOs ---

type CreateMealRequest struct {
	Name       string     `json:"name" validate:"required,max=200"`
	MealType   string     `json:"meal_type" validate:"omitempty,oneof=breakfast lunch dinner snack"`
	Calories   int        `json:"calories" validate:"required,min=1,max=10000"`
	ProteinG   float64    `json:"protein_g" validate:"min=0"`
	CarbsG     float64    `json:"carbs_g" validate:"min=0"`
	FatG       float64    `json:"fat_g" validate:"min=0"`
	OccurredAt *time.Time `json:"occurred_at"`
}

type MealPlanRequest struct {
	CalorieTarget int      `json:"calorie_target"`
	Diet          string   `json:"diet" validate:"max=50"`
	Exclusions    []string `json:"exclusions" validate:"max=20,dive,max=50"`
}

type RecipeRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,max=20,dive,required,max=50"`
}

// --- structured model output ---

type PlannedMeal struct {
	Name     string  `json:"name"`
	MealType string  `json:"meal_type"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

type PlannedDay struct {
	Day   string        `json:"day"`
	Meals []PlannedMeal `json:"meals"`
}

type MealPlan struct {
	CalorieTarget int          `json:"calorie_target"`
	Days          []PlannedDay `json:"days"`
	Fallback      bool         `json:"fallback"`
}

type Recipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Calories     int      `json:"calories"`
	PrepMinutes  int      `json:"prep_minutes"`
	Fallback     bool     `json:"fallback"`
}

// ProductInfo is the normalized shape returned from a barcode lookup.
type ProductInfo struct {
	Barcode         string  `json:"barcode"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
}
