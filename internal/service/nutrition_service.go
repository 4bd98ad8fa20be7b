package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// NutritionService manages the food catalogue, consumption records and the
// daily intake dashboard
type NutritionService struct {
	foods         domain.FoodRepository
	entries       domain.FoodEntryRepository
	profiles      domain.ProfileRepository
	engine        *engine.Engine
	cache         dashboardCache
	dailyStatsTTL time.Duration
	metrics       *telemetry.Instruments
	log           *logger.Logger
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(
	foods domain.FoodRepository,
	entries domain.FoodEntryRepository,
	profiles domain.ProfileRepository,
	cache domain.CacheRepository,
	eng *engine.Engine,
	dailyStatsTTL time.Duration,
	metrics *telemetry.Instruments,
	log *logger.Logger,
) *NutritionService {
	return &NutritionService{
		foods:         foods,
		entries:       entries,
		profiles:      profiles,
		engine:        eng,
		cache:         dashboardCache{repo: cache, metrics: metrics, log: log},
		dailyStatsTTL: dailyStatsTTL,
		metrics:       metrics,
		log:           log,
	}
}

// CreateFood adds a custom food to the catalogue
func (s *NutritionService) CreateFood(ctx context.Context, userID string, food domain.FoodNutritionProfile) (*domain.FoodNutritionProfile, error) {
	food.Name = strings.TrimSpace(food.Name)
	if food.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if food.CaloriesPer100 < 0 || food.ProteinPer100 < 0 || food.CarbsPer100 < 0 || food.FatPer100 < 0 {
		return nil, fmt.Errorf("%w: nutrition values must not be negative", domain.ErrInvalidInput)
	}

	food.ID = ""
	food.CreatedBy = userID
	if err := s.foods.Create(ctx, &food); err != nil {
		return nil, fmt.Errorf("failed to save food: %w", err)
	}
	return &food, nil
}

// GetFood returns a catalogue entry or domain.ErrNotFound
func (s *NutritionService) GetFood(ctx context.Context, id string) (*domain.FoodNutritionProfile, error) {
	return s.foods.GetByID(ctx, id)
}

// LogFood records a consumed portion
func (s *NutritionService) LogFood(ctx context.Context, userID string, in domain.FoodEntryInput) (*domain.FoodConsumptionRecord, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
	}
	if in.Meal == nil || !in.Meal.Valid() {
		return nil, fmt.Errorf("%w: meal is required", domain.ErrInvalidInput)
	}

	if _, err := s.foods.GetByID(ctx, in.FoodID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: food %s", domain.ErrNotFound, in.FoodID)
		}
		return nil, fmt.Errorf("failed to load food: %w", err)
	}

	date := s.engine.Now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	entry := &domain.FoodConsumptionRecord{
		UserID:     userID,
		FoodID:     in.FoodID,
		Quantity:   in.Quantity,
		MealBucket: *in.Meal,
		Date:       date,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save food entry: %w", err)
	}
	s.metrics.FoodEntryLogged(ctx, entry.MealBucket.String())

	s.cache.invalidate(ctx, DailyStatsKey(userID, entry.Date))
	return entry, nil
}

// RemoveEntry deletes a consumption record owned by the user
func (s *NutritionService) RemoveEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return domain.ErrForbidden
	}

	if err := s.entries.Delete(ctx, entryID); err != nil {
		return err
	}

	s.cache.invalidate(ctx, DailyStatsKey(userID, entry.Date))
	return nil
}

// DailyStats aggregates one UTC day of intake against the stored calorie goal.
// Users without a stored goal are measured against the default goal.
func (s *NutritionService) DailyStats(ctx context.Context, userID string, day time.Time) (*domain.DailyStats, error) {
	key := DailyStatsKey(userID, day)

	var cached domain.DailyStats
	if s.cache.get(ctx, "daily_stats", key, &cached) {
		return &cached, nil
	}

	var (
		goal    = engine.DefaultDailyCalories
		records []domain.FoodConsumptionRecord
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.profiles.GetByUserID(gCtx, userID)
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if profile.DailyCalorieGoal > 0 {
			goal = profile.DailyCalorieGoal
		}
		return nil
	})

	g.Go(func() error {
		list, err := s.entries.ListByUserAndDay(gCtx, userID, day)
		if err != nil {
			return fmt.Errorf("failed to list food entries: %w", err)
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	consumed, err := s.join(ctx, records)
	if err != nil {
		return nil, err
	}

	stats := engine.CalculateDailyStats(consumed, goal)
	s.cache.set(ctx, "daily_stats", key, stats, s.dailyStatsTTL)
	return &stats, nil
}

// join attaches each record's food. Records pointing at a deleted food are skipped.
func (s *NutritionService) join(ctx context.Context, records []domain.FoodConsumptionRecord) ([]domain.ConsumedFood, error) {
	if len(records) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(records))
	ids := make([]string, 0, len(records))
	for _, r := range records {
		if !seen[r.FoodID] {
			seen[r.FoodID] = true
			ids = append(ids, r.FoodID)
		}
	}

	foods, err := s.foods.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load foods: %w", err)
	}

	consumed := make([]domain.ConsumedFood, 0, len(records))
	for _, r := range records {
		food, ok := foods[r.FoodID]
		if !ok {
			s.log.Warnw("food entry references missing food", "entry_id", r.ID, "food_id", r.FoodID)
			continue
		}
		consumed = append(consumed, domain.ConsumedFood{Record: r, Food: *food})
	}
	return consumed, nil
}
