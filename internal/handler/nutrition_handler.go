package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
)

const dateLayout = "2006-01-02"

// NutritionHandler handles HTTP requests for foods, food entries and daily intake
type NutritionHandler struct {
	nutrition NutritionService
	now       func() time.Time
}

// NewNutritionHandler creates a new nutrition handler. now picks the default
// day of the daily stats; nil means the wall clock.
func NewNutritionHandler(nutrition NutritionService, now func() time.Time) *NutritionHandler {
	if now == nil {
		now = time.Now
	}
	return &NutritionHandler{nutrition: nutrition, now: now}
}

// CreateFood handles POST /v1/me/foods
func (h *NutritionHandler) CreateFood(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req domain.FoodNutritionProfile
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "create food")
	}

	food, err := h.nutrition.CreateFood(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err, "create food")
	}
	return respond(c, fiber.StatusCreated, food)
}

// GetFood handles GET /v1/me/foods/:id
func (h *NutritionHandler) GetFood(c *fiber.Ctx) error {
	if _, ok := requireUser(c); !ok {
		return nil
	}

	food, err := h.nutrition.GetFood(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "retrieve food")
	}
	return ok200(c, food)
}

// LogFood handles POST /v1/me/food-entries
func (h *NutritionHandler) LogFood(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req domain.FoodEntryInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "log food")
	}

	entry, err := h.nutrition.LogFood(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err, "log food")
	}

	telemetry.SetSpanAttribute(c, "food_entry.id", entry.ID)
	return respond(c, fiber.StatusCreated, entry)
}

// RemoveEntry handles DELETE /v1/me/food-entries/:id
func (h *NutritionHandler) RemoveEntry(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	if err := h.nutrition.RemoveEntry(c.UserContext(), userID, c.Params("id")); err != nil {
		return respondError(c, err, "remove food entry")
	}
	return ok200(c, fiber.Map{"id": c.Params("id"), "deleted": true})
}

// GetDailyStats handles GET /v1/me/nutrition/daily?date=YYYY-MM-DD (UTC, defaults to today)
func (h *NutritionHandler) GetDailyStats(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	day := h.now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		day = parsed
	}

	stats, err := h.nutrition.DailyStats(c.UserContext(), userID, day)
	if err != nil {
		return respondError(c, err, "compute daily stats")
	}
	return ok200(c, fiber.Map{
		"date":     day.Format(dateLayout),
		"stats":    stats,
		"exceeded": stats.Exceeded(),
	})
}
