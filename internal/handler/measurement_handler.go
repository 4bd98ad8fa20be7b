package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
)

// MeasurementHandler handles HTTP requests for body measurements
type MeasurementHandler struct {
	measurements MeasurementService
}

// NewMeasurementHandler creates a new measurement handler
func NewMeasurementHandler(measurements MeasurementService) *MeasurementHandler {
	return &MeasurementHandler{measurements: measurements}
}

// RecordMeasurement handles POST /v1/me/measurements
func (h *MeasurementHandler) RecordMeasurement(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req domain.MeasurementInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "record measurement")
	}

	m, err := h.measurements.Record(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err, "record measurement")
	}

	telemetry.SetSpanAttribute(c, "measurement.id", m.ID)
	return respond(c, fiber.StatusCreated, m)
}

// ListMeasurements handles GET /v1/me/measurements
func (h *MeasurementHandler) ListMeasurements(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	ms, err := h.measurements.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "retrieve measurements")
	}
	return ok200(c, ms)
}
