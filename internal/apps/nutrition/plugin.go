package nutrition

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/ai"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	ai      *ai.Client
	streaks StreakRecorder
}

func New(aiClient *ai.Client, streaks StreakRecorder) *Plugin {
	return &Plugin{ai: aiClient, streaks: streaks}
}

func (p *Plugin) ID() string { return "nutrition" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Meal{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	food := NewFoodClient(cfg.FoodAPIURL, cfg.FoodAPITimeout)
	svc := NewService(db, p.ai, food, p.streaks)
	handler := NewHandler(svc)

	group := router.Group("/nutrition")
	group.Post("/meals", handler.CreateMeal)
	group.Get("/meals", handler.ListMeals)
	group.Delete("/meals/:id", handler.DeleteMeal)
	group.Get("/barcode/:code", handler.LookupBarcode)
	group.Post("/meal-plan", handler.GenerateMealPlan)
	group.Post("/recipe", handler.GenerateRecipe)
}
