package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

// ProfileHandler handles HTTP requests for the user's profile
type ProfileHandler struct {
	profiles ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile handles GET /v1/me/profile
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	profile, err := h.profiles.Get(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "retrieve profile")
	}
	return ok200(c, profile)
}

// UpdateProfile handles PUT /v1/me/profile
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req domain.ProfileUpdate
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err, "update profile")
	}

	profile, err := h.profiles.Update(c.UserContext(), userID, req)
	if err != nil {
		return respondError(c, err, "update profile")
	}
	return ok200(c, profile)
}

// RecalculateCalorieGoal handles POST /v1/me/profile/calorie-goal
func (h *ProfileHandler) RecalculateCalorieGoal(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	kcal, err := h.profiles.RecalculateCalorieGoal(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "recalculate calorie goal")
	}
	return ok200(c, fiber.Map{"daily_calorie_goal": kcal})
}

// GetMetabolism handles GET /v1/me/profile/metabolism
func (h *ProfileHandler) GetMetabolism(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	breakdown, err := h.profiles.MetabolicBreakdown(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "compute metabolic breakdown")
	}
	return ok200(c, breakdown)
}
