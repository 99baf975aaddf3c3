package fasting

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

// Start handles POST /fasting/start.
func (h *Handler) Start(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req StartFastRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	session, err := h.service.Start(userID, req)
	if err != nil {
		if errors.Is(err, ErrActiveFastExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "A fast is already running",
			})
		}
		return serverError(c, "Failed to start fast")
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// End handles POST /fasting/end.
func (h *Handler) End(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	result, err := h.service.End(userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveFast) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No running fast",
			})
		}
		return serverError(c, "Failed to end fast")
	}
	return c.JSON(result)
}

// Status handles GET /fasting/status.
func (h *Handler) Status(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	status, err := h.service.Status(userID)
	if err != nil {
		return serverError(c, "Failed to load fasting status")
	}
	return c.JSON(status)
}

// History handles GET /fasting/history?limit=N.
func (h *Handler) History(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	limit := c.QueryInt("limit", 30)
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	sessions, err := h.service.History(userID, limit)
	if err != nil {
		return serverError(c, "Failed to load fasting history")
	}
	return c.JSON(fiber.Map{"sessions": sessions})
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
