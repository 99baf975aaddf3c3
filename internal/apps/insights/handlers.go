package insights

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

// PredictEnergy handles POST /insights/predictions.
func (h *Handler) PredictEnergy(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	result, err := h.service.PredictEnergy(c.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrPredictionGeneration) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Prediction service is unavailable, try again later",
			})
		}
		return serverError(c, "Failed to generate predictions")
	}

	return c.JSON(result)
}

// ListPredictions handles GET /insights/predictions.
func (h *Handler) ListPredictions(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	predictions, err := h.service.ListPredictions(userID)
	if err != nil {
		return serverError(c, "Failed to fetch predictions")
	}

	return c.JSON(fiber.Map{"predictions": predictions})
}

// Chat handles POST /insights/chat.
func (h *Handler) Chat(c *fiber.Ctx) error {
	if _, err := scope.CurrentUserID(c); err != nil {
		return unauthorized(c)
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	reply, err := h.service.Chat(c.Context(), req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Chat service is unavailable, try again later",
		})
	}

	return c.JSON(ChatResponse{Reply: reply})
}

// AnalyzeEmotion handles POST /insights/emotion.
func (h *Handler) AnalyzeEmotion(c *fiber.Ctx) error {
	if _, err := scope.CurrentUserID(c); err != nil {
		return unauthorized(c)
	}

	var req EmotionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	result, err := h.service.AnalyzeEmotion(c.Context(), req.Text)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Emotion analysis is unavailable, try again later",
		})
	}

	return c.JSON(result)
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
