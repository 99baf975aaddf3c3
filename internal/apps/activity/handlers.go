package activity

import (
	"errors"
	"time"

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

// CreateEnergyLog handles POST /activity/energy.
func (h *Handler) CreateEnergyLog(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateEnergyLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Energy level must be between 1 and 100")
	}

	log, err := h.service.CreateEnergyLog(userID, req)
	if err != nil {
		return serverError(c, "Failed to create energy log")
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

// CreateFocusSession handles POST /activity/focus.
func (h *Handler) CreateFocusSession(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateFocusSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Duration must be between 1 and 1440 minutes")
	}

	session, err := h.service.CreateFocusSession(userID, req)
	if err != nil {
		return serverError(c, "Failed to create focus session")
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// CreateWorkout handles POST /activity/workouts.
func (h *Handler) CreateWorkout(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Workout type and duration are required")
	}

	workout, err := h.service.CreateWorkout(userID, req)
	if err != nil {
		if errors.Is(err, ErrInvalidIntensity) {
			return badRequest(c, err.Error())
		}
		return serverError(c, "Failed to create workout")
	}

	return c.Status(fiber.StatusCreated).JSON(workout)
}

// CreateSleepLog handles POST /activity/sleep.
func (h *Handler) CreateSleepLog(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateSleepLogRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return badRequest(c, "Sleep duration must be between 0 and 24 hours")
	}

	log, err := h.service.CreateSleepLog(userID, req)
	if err != nil {
		return serverError(c, "Failed to create sleep log")
	}

	return c.Status(fiber.StatusCreated).JSON(log)
}

// ListEnergyLogs handles GET /activity/energy.
func (h *Handler) ListEnergyLogs(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	from, to, limit, offset, page := listParams(c)
	logs, total, err := h.service.ListEnergyLogs(userID, from, to, limit, offset)
	if err != nil {
		return serverError(c, "Failed to fetch energy logs")
	}

	return c.JSON(ListResponse[EnergyLog]{Items: logs, Total: total, Page: page, Limit: limit})
}

// ListFocusSessions handles GET /activity/focus.
func (h *Handler) ListFocusSessions(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	from, to, limit, offset, page := listParams(c)
	sessions, total, err := h.service.ListFocusSessions(userID, from, to, limit, offset)
	if err != nil {
		return serverError(c, "Failed to fetch focus sessions")
	}

	return c.JSON(ListResponse[FocusSession]{Items: sessions, Total: total, Page: page, Limit: limit})
}

// ListWorkouts handles GET /activity/workouts.
func (h *Handler) ListWorkouts(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	from, to, limit, offset, page := listParams(c)
	workouts, total, err := h.service.ListWorkouts(userID, from, to, limit, offset)
	if err != nil {
		return serverError(c, "Failed to fetch workouts")
	}

	return c.JSON(ListResponse[Workout]{Items: workouts, Total: total, Page: page, Limit: limit})
}

// ListSleepLogs handles GET /activity/sleep.
func (h *Handler) ListSleepLogs(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	from, to, limit, offset, page := listParams(c)
	logs, total, err := h.service.ListSleepLogs(userID, from, to, limit, offset)
	if err != nil {
		return serverError(c, "Failed to fetch sleep logs")
	}

	return c.JSON(ListResponse[SleepLog]{Items: logs, Total: total, Page: page, Limit: limit})
}

// Delete handles DELETE /activity/:kind/:id.
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid record ID")
	}

	switch c.Params("kind") {
	case "energy":
		err = h.service.DeleteEnergyLog(userID, id)
	case "focus":
		err = h.service.DeleteFocusSession(userID, id)
	case "workouts":
		err = h.service.DeleteWorkout(userID, id)
	case "sleep":
		err = h.service.DeleteSleepLog(userID, id)
	default:
		return badRequest(c, "Unknown activity kind")
	}

	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Record not found",
			})
		}
		return serverError(c, "Failed to delete record")
	}

	return c.JSON(fiber.Map{"message": "Record deleted"})
}

func listParams(c *fiber.Ctx) (from, to time.Time, limit, offset, page int) {
	days := c.QueryInt("days", 30)
	if days < 1 {
		days = 1
	}
	if days > 365 {
		days = 365
	}

	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset = (page - 1) * limit

	to = time.Now().UTC()
	from = to.AddDate(0, 0, -days)
	return
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
