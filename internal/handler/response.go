package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/middleware"
)

var validate = validator.New()

// respond writes the success envelope
func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func ok200(c *fiber.Ctx, data interface{}) error {
	return respond(c, fiber.StatusOK, data)
}

// fail writes the error envelope
func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// respondError maps domain errors to HTTP statuses. Unknown errors are 500s
// and their detail is not leaked.
func respondError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidMeasurement), errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "profile not found: set up your profile first")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "failed to "+action)
	}
}

// parseBody decodes and validates a JSON request body
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		return fmt.Errorf("%w: invalid request body: %s", domain.ErrInvalidInput, err.Error())
	}
	if err := validate.Struct(dest); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, describeValidation(err))
	}
	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// requireUser returns the authenticated user ID or writes a 401
func requireUser(c *fiber.Ctx) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		_ = fail(c, fiber.StatusUnauthorized, "user not authenticated")
		return "", false
	}
	return userID, true
}
