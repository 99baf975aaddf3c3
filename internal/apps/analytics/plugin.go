package analytics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct{}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) ID() string { return "analytics" }

// Models returns nil: analytics derives everything from activity tables.
func (p *Plugin) Models() []interface{} {
	return nil
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	router.Get("/analytics", handler.GetOverview)
}
