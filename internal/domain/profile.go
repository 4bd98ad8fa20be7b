package domain

import (
	"context"
	"time"
)

// UserProfile holds the fields of a user that drive calorie and progress math.
// DailyCalorieGoal is derived and recomputed whenever the profile or the
// latest measurement changes.
type UserProfile struct {
	UserID           string        `bson:"_id" json:"user_id"`
	Sex              Sex           `bson:"sex" json:"sex"`
	DateOfBirth      time.Time     `bson:"date_of_birth" json:"date_of_birth"`
	ActivityLevel    ActivityLevel `bson:"activity_level" json:"activity_level"`
	WeightGoal       WeightGoal    `bson:"weight_goal" json:"weight_goal"`
	TargetWeight     *float64      `bson:"target_weight,omitempty" json:"target_weight,omitempty"`
	DailyCalorieGoal int           `bson:"daily_calorie_goal" json:"daily_calorie_goal"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updated_at"`
}

// HasTarget reports whether a usable target weight is set
func (p *UserProfile) HasTarget() bool {
	return p.TargetWeight != nil && *p.TargetWeight > 0
}

// ProfileUpdate carries the editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	Sex           *Sex           `json:"sex,omitempty"`
	DateOfBirth   *time.Time     `json:"date_of_birth,omitempty"`
	ActivityLevel *ActivityLevel `json:"activity_level,omitempty"`
	WeightGoal    *WeightGoal    `json:"weight_goal,omitempty"`
	TargetWeight  *float64       `json:"target_weight,omitempty" validate:"omitempty,gte=0,lte=700"`
}

// ProfileRepository defines the interface for UserProfile persistence
type ProfileRepository interface {
	// GetByUserID returns ErrUserNotFound when no profile exists
	GetByUserID(ctx context.Context, userID string) (*UserProfile, error)

	// Upsert creates or replaces the profile
	Upsert(ctx context.Context, profile *UserProfile) error

	// UpdateCalorieGoal stores a freshly computed daily calorie goal
	UpdateCalorieGoal(ctx context.Context, userID string, kcal int) error
}
