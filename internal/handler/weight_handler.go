package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

// WeightHandler handles HTTP requests for the weight-tracking views
type WeightHandler struct {
	weight WeightService
}

// NewWeightHandler creates a new weight handler
func NewWeightHandler(weight WeightService) *WeightHandler {
	return &WeightHandler{weight: weight}
}

// GetData handles GET /v1/me/weight
func (h *WeightHandler) GetData(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	data, err := h.weight.Data(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "retrieve weight data")
	}
	return ok200(c, data)
}

// GetOverview handles GET /v1/me/weight/overview
func (h *WeightHandler) GetOverview(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	overview, err := h.weight.Overview(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "build weight overview")
	}
	return ok200(c, overview)
}

// GetProgress handles GET /v1/me/weight/progress
func (h *WeightHandler) GetProgress(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	progress, err := h.weight.Progress(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "compute weight progress")
	}
	return ok200(c, progress)
}

// GetTrend handles GET /v1/me/weight/trend?period=week|month|quarter|year
func (h *WeightHandler) GetTrend(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	period, err := domain.ParsePeriod(c.Query("period", string(domain.PeriodWeek)))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	trend, err := h.weight.Trend(c.UserContext(), userID, period)
	if err != nil {
		return respondError(c, err, "compute weight trend")
	}
	return ok200(c, trend)
}

// GetChart handles GET /v1/me/weight/chart
func (h *WeightHandler) GetChart(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	points, err := h.weight.Chart(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "build weight chart")
	}
	return ok200(c, points)
}

// GetStats handles GET /v1/me/weight/stats
func (h *WeightHandler) GetStats(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	stats, err := h.weight.Stats(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "compute progress stats")
	}
	return ok200(c, stats)
}

// GetBodyMetrics handles GET /v1/me/weight/body-metrics
func (h *WeightHandler) GetBodyMetrics(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	metrics, err := h.weight.BodyMetrics(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "compute body metrics")
	}
	return ok200(c, metrics)
}
