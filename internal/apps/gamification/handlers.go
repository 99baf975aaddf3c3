package gamification

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

// GetState handles GET /gamification - returns the user's progression state.
func (h *Handler) GetState(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	state, err := h.service.GetState(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch gamification state",
		})
	}

	return c.JSON(toStateResponse(state))
}

// Checkin handles POST /gamification/checkin - runs the daily streak update.
func (h *Handler) Checkin(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	update, err := h.service.UpdateStreak(userID, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update streak",
		})
	}

	events := update.Events
	if events == nil {
		events = []Event{}
	}

	return c.JSON(CheckinResponse{
		State:    toStateResponse(&update.State),
		XPEarned: update.XPEarned,
		Events:   events,
	})
}

// GetAchievements handles GET /gamification/achievements.
func (h *Handler) GetAchievements(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	achievements, err := h.service.Achievements(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch achievements",
		})
	}

	return c.JSON(fiber.Map{"achievements": achievements})
}

func toStateResponse(state *GamificationState) StateResponse {
	return StateResponse{
		TotalPoints:      state.TotalPoints,
		CurrentLevel:     state.CurrentLevel,
		CurrentXP:        state.CurrentXP,
		XPToNextLevel:    state.XPToNextLevel,
		CurrentStreak:    state.CurrentStreak,
		LongestStreak:    state.LongestStreak,
		LastActivityDate: state.LastActivityDate,
	}
}
