package nutrition

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/humanos-app/humanos-backend/internal/dto"
	"github.com/humanos-app/humanos-backend/internal/scope"
	"gorm.io/gorm"
)

type Handler struct {
	service  *Service
	validate *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, validate: validator.New()}
}

// CreateMeal handles POST /nutrition/meals.
func (h *Handler) CreateMeal(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	meal, err := h.service.CreateMeal(userID, req)
	if err != nil {
		return serverError(c, "Failed to create meal")
	}
	return c.Status(fiber.StatusCreated).JSON(meal)
}

// ListMeals handles GET /nutrition/meals?days=N&page=N&limit=N.
func (h *Handler) ListMeals(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	days := clampQuery(c.QueryInt("days", 7), 1, 365)
	page := clampQuery(c.QueryInt("page", 1), 1, 10000)
	limit := clampQuery(c.QueryInt("limit", 50), 1, 200)

	meals, total, err := h.service.ListMeals(userID, days, page, limit)
	if err != nil {
		return serverError(c, "Failed to list meals")
	}
	return c.JSON(fiber.Map{"items": meals, "total": total, "page": page, "limit": limit})
}

// DeleteMeal handles DELETE /nutrition/meals/:id.
func (h *Handler) DeleteMeal(c *fiber.Ctx) error {
	userID, err := scope.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	mealID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid meal ID")
	}

	if err := h.service.DeleteMeal(userID, mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Meal not found",
			})
		}
		return serverError(c, "Failed to delete meal")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LookupBarcode handles GET /nutrition/barcode/:code.
func (h *Handler) LookupBarcode(c *fiber.Ctx) error {
	if _, err := scope.CurrentUserID(c); err != nil {
		return unauthorized(c)
	}

	product, err := h.service.LookupBarcode(c.Context(), c.Params("code"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidBarcode):
			return badRequest(c, "Barcode must be 8 to 14 digits")
		case errors.Is(err, ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Product not found",
			})
		default:
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
				Error: true, Message: "Food database is unavailable, try again later",
			})
		}
	}
	return c.JSON(product)
}

// GenerateMealPlan handles POST /nutrition/meal-plan.
func (h *Handler) GenerateMealPlan(c *fiber.Ctx) error {
	if _, err := scope.CurrentUserID(c); err != nil {
		return unauthorized(c)
	}

	var req MealPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	plan, err := h.service.GenerateMealPlan(c.Context(), req)
	if err != nil {
		return serverError(c, "Failed to generate meal plan")
	}
	return c.JSON(plan)
}

// GenerateRecipe handles POST /nutrition/recipe.
func (h *Handler) GenerateRecipe(c *fiber.Ctx) error {
	if _, err := scope.CurrentUserID(c); err != nil {
		return unauthorized(c)
	}

	var req RecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, "Validation failed: "+err.Error())
	}

	recipe, err := h.service.GenerateRecipe(c.Context(), req.Ingredients)
	if err != nil {
		return serverError(c, "Failed to generate recipe")
	}
	return c.JSON(recipe)
}

func clampQuery(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
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
