package engine

import (
	"fmt"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

// DefaultDailyCalories is returned when a user has no measurement history.
const DefaultDailyCalories = 2000

const (
	loseWeightDeficit = 500 // kcal/day
	gainWeightSurplus = 400 // kcal/day
)

// activityMultipliers maps each activity level to its TDEE multiplier
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:        1.2,
	domain.ActivityLightlyActive:    1.375,
	domain.ActivityModeratelyActive: 1.55,
	domain.ActivityVeryActive:       1.725,
	domain.ActivityExtremelyActive:  1.9,
}

// Age returns completed years between dob and today, comparing calendar dates
// in dob's location. A Feb 29 birthday falls on Feb 28 in non-leap years.
func Age(dob, today time.Time) int {
	by, bm, bd := dob.Date()
	ty, tm, td := today.In(dob.Location()).Date()

	if bm == time.February && bd == 29 && !isLeapYear(ty) {
		bd = 28
	}
	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

func isLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// ActivityMultiplier returns the TDEE multiplier for level. Unknown levels
// are treated as sedentary.
func ActivityMultiplier(level domain.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[domain.ActivitySedentary]
}

// ApplyGoalAdjustment shifts TDEE by the goal's deficit or surplus and
// truncates to whole kcal.
func ApplyGoalAdjustment(tdee float64, goal domain.WeightGoal) int {
	switch goal {
	case domain.GoalLoseWeight:
		return int(tdee - loseWeightDeficit)
	case domain.GoalGainWeight:
		return int(tdee + gainWeightSurplus)
	default:
		return int(tdee)
	}
}

// ValidateMeasurement rejects non-positive weight or height
func ValidateMeasurement(weight, height float64) error {
	if weight <= 0 || height <= 0 {
		return fmt.Errorf("%w: weight and height must be positive (weight=%.2f, height=%.2f)",
			domain.ErrInvalidMeasurement, weight, height)
	}
	return nil
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation
func BMR(sex domain.Sex, age int, height, weight float64) float64 {
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if sex == domain.SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// CalculateBMR computes the profile's BMR for the given height (cm) and weight (kg)
func (e *Engine) CalculateBMR(profile domain.UserProfile, height, weight float64) (float64, error) {
	if err := ValidateMeasurement(weight, height); err != nil {
		return 0, err
	}
	return BMR(profile.Sex, Age(profile.DateOfBirth, e.now()), height, weight), nil
}

// MetabolicBreakdown computes every intermediate step of the daily calorie goal
func (e *Engine) MetabolicBreakdown(profile domain.UserProfile, height, weight float64) (domain.MetabolicBreakdown, error) {
	if err := ValidateMeasurement(weight, height); err != nil {
		return domain.MetabolicBreakdown{}, err
	}
	age := Age(profile.DateOfBirth, e.now())
	bmr := BMR(profile.Sex, age, height, weight)
	multiplier := ActivityMultiplier(profile.ActivityLevel)
	tdee := bmr * multiplier

	return domain.MetabolicBreakdown{
		Age:                age,
		BMR:                bmr,
		ActivityMultiplier: multiplier,
		TDEE:               tdee,
		DailyCalorieGoal:   ApplyGoalAdjustment(tdee, profile.WeightGoal),
	}, nil
}

// CalculateDailyCalories returns the daily calorie goal for the profile based
// on its latest measurement, or DefaultDailyCalories when there is none.
func (e *Engine) CalculateDailyCalories(profile domain.UserProfile, latest *domain.Measurement) (int, error) {
	if latest == nil {
		return DefaultDailyCalories, nil
	}
	breakdown, err := e.MetabolicBreakdown(profile, latest.Height, latest.Weight)
	if err != nil {
		return 0, err
	}
	return breakdown.DailyCalorieGoal, nil
}
