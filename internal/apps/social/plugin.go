package social

import (
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Plugin struct {
	redis *redis.Client
}

func New(redisClient *redis.Client) *Plugin {
	return &Plugin{redis: redisClient}
}

func (p *Plugin) ID() string { return "social" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Partnership{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	svc := NewService(db, p.redis)
	handler := NewHandler(svc)

	group := router.Group("/social")
	group.Post("/invites", handler.Invite)
	group.Post("/invites/:id/accept", handler.Accept)
	group.Post("/invites/:id/decline", handler.Decline)
	group.Get("/partners", handler.Partners)
	group.Get("/leaderboard", handler.Leaderboard)
}
