package engine

import (
	"math"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

// MotivationalMessage picks the dashboard headline for a progress snapshot
func MotivationalMessage(progress domain.WeightProgress, goal *domain.WeightGoal) string {
	if goal == nil || !goal.Valid() {
		return "Keep tracking your progress!"
	}

	if progress.ProgressPercentage >= 100 {
		return "Goal achieved! Great work!"
	}

	if progress.IsOnTrack {
		switch {
		case progress.ProgressPercentage > 75:
			return "Almost there! Keep pushing!"
		case progress.ProgressPercentage > 50:
			return "Halfway there! Stay consistent!"
		case progress.ProgressPercentage > 25:
			return "Good progress! Keep it up!"
		default:
			return "Great start! Stay committed!"
		}
	}

	switch {
	case *goal == domain.GoalLoseWeight && progress.WeightChange >= 0:
		return "Focus on your calorie deficit"
	case *goal == domain.GoalGainWeight && progress.WeightChange <= 0:
		return "Consider increasing your calories"
	case *goal == domain.GoalMaintainWeight && math.Abs(progress.WeightChange) > 2:
		return "Try to stabilize your routine"
	default:
		return "Adjust your approach for better results"
	}
}
