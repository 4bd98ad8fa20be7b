package domain

import (
	"context"
	"time"
)

// Measurement is a single body measurement. Records are immutable; an edit is
// stored as a new record.
type Measurement struct {
	ID     string    `bson:"_id,omitempty" json:"id"`
	UserID string    `bson:"user_id" json:"user_id"`
	Date   time.Time `bson:"date" json:"date"`
	Weight float64   `bson:"weight" json:"weight"` // kg
	Height float64   `bson:"height" json:"height"` // cm
	BMI    float64   `bson:"imc" json:"bmi"`
	FFMI   float64   `bson:"ffmi" json:"ffmi"`
}

// MeasurementInput is what a user submits when recording a measurement
type MeasurementInput struct {
	Weight float64    `json:"weight" validate:"required,gt=0,lte=700"`
	Height float64    `json:"height" validate:"required,gt=0,lte=300"`
	Date   *time.Time `json:"date,omitempty"`
}

// WeightData is the raw weight history together with the user's goal settings
type WeightData struct {
	TargetWeight *float64      `json:"target_weight,omitempty"`
	WeightGoal   WeightGoal    `json:"weight_goal"`
	Measurements []Measurement `json:"measurements"`
}

// MeasurementRepository defines the interface for Measurement persistence
type MeasurementRepository interface {
	// Create appends a measurement to the user's history
	Create(ctx context.Context, m *Measurement) error

	// ListByUser returns the full history ordered by date ascending
	ListByUser(ctx context.Context, userID string) ([]Measurement, error)

	// GetLatestByUser returns the most recent measurement, or nil if none exist
	GetLatestByUser(ctx context.Context, userID string) (*Measurement, error)
}
