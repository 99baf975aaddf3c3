package analytics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/dto"
	"github.com/humanos-app/humanos-backend/internal/scope"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetOverview handles GET /analytics?days=N.
func (h *Handler) GetOverview(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	days := c.QueryInt("days", 7)
	if days < 1 {
		days = 1
	}
	if days > 90 {
		days = 90
	}

	overview, err := h.service.Aggregate(userID, days, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute analytics",
		})
	}

	return c.JSON(overview)
}
