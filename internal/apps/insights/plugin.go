package insights

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/ai"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	ai *ai.Client
}

func New(aiClient *ai.Client) *Plugin {
	return &Plugin{ai: aiClient}
}

func (p *Plugin) ID() string { return "insights" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&EnergyPrediction{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db, p.ai)
	handler := NewHandler(svc)

	group := router.Group("/insights")
	group.Post("/predictions", handler.PredictEnergy)
	group.Get("/predictions", handler.ListPredictions)
	group.Post("/chat", handler.Chat)
	group.Post("/emotion", handler.AnalyzeEmotion)
}
