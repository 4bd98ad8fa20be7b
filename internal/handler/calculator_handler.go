package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
)

// PreviewRequest describes a hypothetical person for the public calculator
type PreviewRequest struct {
	Sex               domain.Sex           `json:"sex" validate:"required"`
	Age               int                  `json:"age" validate:"required,gt=0,lte=120"`
	ActivityLevel     domain.ActivityLevel `json:"activity_level" validate:"required"`
	WeightGoal        domain.WeightGoal    `json:"weight_goal" validate:"required"`
	Weight            float64              `json:"weight" validate:"required,gt=0,lte=700"`
	Height            float64              `json:"height" validate:"required,gt=0,lte=300"`
	BodyFatPercentage *float64             `json:"body_fat_percentage,omitempty" validate:"omitempty,gte=0,lt=100"`
}

// PreviewResponse is the calculator output
type PreviewResponse struct {
	Metabolic   domain.MetabolicBreakdown `json:"metabolic"`
	BodyMetrics domain.BodyMetrics        `json:"body_metrics"`
}

// CalculatorHandler serves stateless engine previews
type CalculatorHandler struct {
	engine *engine.Engine
}

// NewCalculatorHandler creates a new calculator handler
func NewCalculatorHandler(eng *engine.Engine) *CalculatorHandler {
	return &CalculatorHandler{engine: eng}
}

// Preview handles POST /v1/calculator/preview
func (h *CalculatorHandler) Preview(c *fiber.Ctx) error {
	var req PreviewRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "compute preview")
	}

	resp, err := h.preview(req)
	if err != nil {
		return respondError(c, err, "compute preview")
	}
	return ok200(c, resp)
}

func (h *CalculatorHandler) preview(req PreviewRequest) (*PreviewResponse, error) {
	switch {
	case !req.Sex.Valid():
		return nil, fmt.Errorf("%w: unknown sex", domain.ErrInvalidInput)
	case !req.ActivityLevel.Valid():
		return nil, fmt.Errorf("%w: unknown activity_level", domain.ErrInvalidInput)
	case !req.WeightGoal.Valid():
		return nil, fmt.Errorf("%w: unknown weight_goal", domain.ErrInvalidInput)
	}

	profile := domain.UserProfile{
		Sex:           req.Sex,
		DateOfBirth:   h.engine.Now().AddDate(-req.Age, 0, 0),
		ActivityLevel: req.ActivityLevel,
		WeightGoal:    req.WeightGoal,
	}

	breakdown, err := h.engine.MetabolicBreakdown(profile, req.Height, req.Weight)
	if err != nil {
		return nil, err
	}

	bodyFat := engine.DefaultBodyFatPercentage
	if req.BodyFatPercentage != nil {
		bodyFat = *req.BodyFatPercentage
	}
	metrics, err := engine.CalculateBodyMetricsWithBodyFat(req.Weight, req.Height, req.Sex, bodyFat)
	if err != nil {
		return nil, err
	}

	return &PreviewResponse{Metabolic: breakdown, BodyMetrics: metrics}, nil
}
