package domain

import "errors"

// Common errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("access forbidden: you don't own this resource")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidMeasurement = errors.New("invalid measurement")
	ErrInvalidInput       = errors.New("invalid input")
)
