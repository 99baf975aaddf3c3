package gamification

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	service *Service
}

func New(service *Service) *Plugin {
	return &Plugin{service: service}
}

func (p *Plugin) ID() string { return "gamification" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&GamificationState{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewHandler(p.service)

	router.Get("/gamification", handler.GetState)
	router.Post("/gamification/checkin", handler.Checkin)
	router.Get("/gamification/achievements", handler.GetAchievements)
}
