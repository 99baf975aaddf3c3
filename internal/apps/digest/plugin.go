package digest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/apps/analytics"
	"github.com/humanos-app/humanos-backend/internal/apps/gamification"
	"github.com/humanos-app/humanos-backend/internal/config"
	"gorm.io/gorm"
)

type Plugin struct {
	gam    *gamification.Service
	mailer *Mailer
}

func New(gamSvc *gamification.Service, mailer *Mailer) *Plugin {
	return &Plugin{gam: gamSvc, mailer: mailer}
}

func (p *Plugin) ID() string { return "digest" }

// Models returns nil: preferences live in the shared user_preferences table
// migrated with the core schema.
func (p *Plugin) Models() []interface{} {
	return nil
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db, analytics.NewService(db), p.gam, p.mailer)
	handler := NewHandler(svc)

	group := router.Group("/digest")
	group.Get("/preferences", handler.GetPreferences)
	group.Put("/preferences", handler.UpdatePreferences)
	group.Post("/send", handler.Send)
}
