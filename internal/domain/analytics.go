package domain

import "time"

// BodyMetrics is the body-composition snapshot for one weight/height pair
type BodyMetrics struct {
	Weight       float64      `json:"weight"` // kg
	Height       float64      `json:"height"` // cm
	BMI          float64      `json:"bmi"`
	BMICategory  BMICategory  `json:"bmi_category"`
	FFMI         float64      `json:"ffmi"`
	FFMICategory FFMICategory `json:"ffmi_category"`
}

// MetabolicBreakdown exposes the intermediate values behind a daily calorie goal
type MetabolicBreakdown struct {
	Age                int     `json:"age"`
	BMR                float64 `json:"bmr"`
	ActivityMultiplier float64 `json:"activity_multiplier"`
	TDEE               float64 `json:"tdee"`
	DailyCalorieGoal   int     `json:"daily_calorie_goal"`
}

// WeightTrend summarizes weight change over a look-back window
type WeightTrend struct {
	Period            Period         `json:"period"`
	Change            float64        `json:"change"` // kg, last minus first
	Trend             TrendDirection `json:"trend"`
	VelocityKgPerWeek float64        `json:"velocity"`
}

// WeightProgress tracks the full history against the user's target
type WeightProgress struct {
	CurrentWeight      float64  `json:"current_weight"`
	TargetWeight       *float64 `json:"target_weight,omitempty"`
	StartWeight        *float64 `json:"start_weight,omitempty"`
	WeightChange       float64  `json:"weight_change"` // kg (positive = gained)
	ProgressPercentage float64  `json:"progress_percentage"`
	IsOnTrack          bool     `json:"is_on_track"`
	DaysToGoal         *int     `json:"days_to_goal,omitempty"`
	WeeklyAverage      float64  `json:"weekly_average"`
}

// ProgressStats reports tracking consistency
type ProgressStats struct {
	TotalMeasurements   int     `json:"total_measurements"`
	TrackingDays        int     `json:"tracking_days"`
	LongestStreak       int     `json:"longest_streak"`
	CurrentStreak       int     `json:"current_streak"`
	AverageWeeklyChange float64 `json:"average_weekly_change"` // kg/week over the last week
}

// ChartDataPoint is one point of a weight chart. IsGoal marks the synthetic
// point that anchors the goal line; it is not a measurement.
type ChartDataPoint struct {
	Date   time.Time `json:"date"`
	Weight float64   `json:"weight"`
	Target *float64  `json:"target,omitempty"`
	IsGoal bool      `json:"is_goal,omitempty"`
}

// WeightOverview bundles everything the weight dashboard renders
type WeightOverview struct {
	Progress    WeightProgress         `json:"progress"`
	Trends      map[Period]WeightTrend `json:"trends"`
	Stats       ProgressStats          `json:"stats"`
	Chart       []ChartDataPoint       `json:"chart"`
	BodyMetrics *BodyMetrics           `json:"body_metrics,omitempty"`
	Message     string                 `json:"message"`
}

// NutritionTotals are summed calories and macronutrients
type NutritionTotals struct {
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// Add returns the element-wise sum
func (t NutritionTotals) Add(o NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories:      t.Calories + o.Calories,
		Proteins:      t.Proteins + o.Proteins,
		Carbohydrates: t.Carbohydrates + o.Carbohydrates,
		Fats:          t.Fats + o.Fats,
	}
}

// ConsumedItem is a consumption record with nutrition scaled to its quantity
type ConsumedItem struct {
	EntryID  string          `json:"entry_id"`
	FoodID   string          `json:"food_id"`
	Name     string          `json:"name"`
	Quantity float64         `json:"quantity"` // grams
	Totals   NutritionTotals `json:"totals"`
}

// MealSummary is the subtotal of one meal bucket
type MealSummary struct {
	Meal   MealBucket      `json:"meal"`
	Totals NutritionTotals `json:"totals"`
	Items  []ConsumedItem  `json:"items"`
}

// DailyStats is one day's intake against the calorie goal. ProgressPercentage
// is not clamped; renderers decide how to show values above 100.
type DailyStats struct {
	TotalCalories      float64       `json:"total_calories"`
	TotalProteins      float64       `json:"total_proteins"`
	TotalCarbohydrates float64       `json:"total_carbohydrates"`
	TotalFats          float64       `json:"total_fats"`
	CalorieGoal        int           `json:"calorie_goal"`
	RemainingCalories  float64       `json:"remaining_calories"`
	ProgressPercentage float64       `json:"progress_percentage"`
	Meals              []MealSummary `json:"meals"`
}

// Exceeded reports whether intake is above the goal
func (s DailyStats) Exceeded() bool {
	return s.ProgressPercentage > 100
}
