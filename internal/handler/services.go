package handler

import (
	"context"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

// The handlers depend on these narrow views of the services so they can be
// tested against stubs.

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.UserProfile, error)
	RecalculateCalorieGoal(ctx context.Context, userID string) (int, error)
	MetabolicBreakdown(ctx context.Context, userID string) (*domain.MetabolicBreakdown, error)
}

type MeasurementService interface {
	Record(ctx context.Context, userID string, in domain.MeasurementInput) (*domain.Measurement, error)
	List(ctx context.Context, userID string) ([]domain.Measurement, error)
}

type WeightService interface {
	Data(ctx context.Context, userID string) (*domain.WeightData, error)
	Progress(ctx context.Context, userID string) (*domain.WeightProgress, error)
	Trend(ctx context.Context, userID string, period domain.Period) (*domain.WeightTrend, error)
	Chart(ctx context.Context, userID string) ([]domain.ChartDataPoint, error)
	Stats(ctx context.Context, userID string) (*domain.ProgressStats, error)
	BodyMetrics(ctx context.Context, userID string) (*domain.BodyMetrics, error)
	Overview(ctx context.Context, userID string) (*domain.WeightOverview, error)
}

type NutritionService interface {
	CreateFood(ctx context.Context, userID string, food domain.FoodNutritionProfile) (*domain.FoodNutritionProfile, error)
	GetFood(ctx context.Context, id string) (*domain.FoodNutritionProfile, error)
	LogFood(ctx context.Context, userID string, in domain.FoodEntryInput) (*domain.FoodConsumptionRecord, error)
	RemoveEntry(ctx context.Context, userID, entryID string) error
	DailyStats(ctx context.Context, userID string, day time.Time) (*domain.DailyStats, error)
}
