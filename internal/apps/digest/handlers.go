package digest

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/humanos-app/humanos-backend/internal/dto"
	"github.com/humanos-app/humanos-backend/internal/scope"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// GetPreferences handles GET /digest/preferences.
func (h *Handler) GetPreferences(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	pref, err := h.service.GetPreferences(userID)
	if err != nil {
		return serverError(c, "Failed to load preferences")
	}
	return c.JSON(pref)
}

// UpdatePreferences handles PUT /digest/preferences.
func (h *Handler) UpdatePreferences(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	pref, err := h.service.UpdatePreferences(userID, req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.JSON(pref)
}

// Send handles POST /digest/send. The digest always goes to the caller's
// own address.
func (h *Handler) Send(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.service.SendDigest(userID); err != nil {
		if errors.Is(err, ErrMailerDisabled) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Mail delivery is not configured",
			})
		}
		return serverError(c, "Failed to send digest")
	}
	return c.JSON(fiber.Map{"sent": true})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}
