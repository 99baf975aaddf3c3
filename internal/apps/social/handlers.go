package social

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
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

// Invite handles POST /social/invites.
func (h *Handler) Invite(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	partnership, err := h.service.Invite(userID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No user with that email",
			})
		case errors.Is(err, ErrSelfInvite):
			return badRequest(c, "You cannot invite yourself")
		case errors.Is(err, ErrAlreadyPartnered):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Partnership already exists",
			})
		default:
			return serverError(c, "Failed to send invite")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(partnership)
}

// Accept handles POST /social/invites/:id/accept.
func (h *Handler) Accept(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	partnershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid invite ID")
	}

	partnership, err := h.service.Accept(userID, partnershipID)
	if err != nil {
		return inviteError(c, err, "Failed to accept invite")
	}
	return c.JSON(partnership)
}

// Decline handles POST /social/invites/:id/decline.
func (h *Handler) Decline(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	partnershipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid invite ID")
	}

	if err := h.service.Decline(userID, partnershipID); err != nil {
		return inviteError(c, err, "Failed to decline invite")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Partners handles GET /social/partners.
func (h *Handler) Partners(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	partners, err := h.service.Partners(userID)
	if err != nil {
		return serverError(c, "Failed to list partners")
	}
	return c.JSON(fiber.Map{"partners": partners})
}

// Leaderboard handles GET /social/leaderboard.
func (h *Handler) Leaderboard(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entries, err := h.service.Leaderboard(c.Context(), userID)
	if err != nil {
		return serverError(c, "Failed to build leaderboard")
	}
	return c.JSON(fiber.Map{"leaderboard": entries})
}

func inviteError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, ErrInviteNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Invite not found",
		})
	case errors.Is(err, ErrNotInviteRecipient):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "This invite is addressed to another user",
		})
	default:
		return serverError(c, fallback)
	}
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
