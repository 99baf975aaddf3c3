package fasting

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	points PointsAwarder
}

func New(points PointsAwarder) *Plugin {
	return &Plugin{points: points}
}

func (p *Plugin) ID() string { return "fasting" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&FastingSession{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db, p.points)
	handler := NewHandler(svc)

	group := router.Group("/fasting")
	group.Post("/start", handler.Start)
	group.Post("/end", handler.End)
	group.Get("/status", handler.Status)
	group.Get("/history", handler.History)
}
