package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
)

// ProfileService manages user profiles and keeps the derived daily calorie
// goal in sync with them
type ProfileService struct {
	profiles     domain.ProfileRepository
	measurements domain.MeasurementRepository
	engine       *engine.Engine
	cache        dashboardCache
	metrics      *telemetry.Instruments
	log          *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profiles domain.ProfileRepository,
	measurements domain.MeasurementRepository,
	cache domain.CacheRepository,
	eng *engine.Engine,
	metrics *telemetry.Instruments,
	log *logger.Logger,
) *ProfileService {
	return &ProfileService{
		profiles:     profiles,
		measurements: measurements,
		engine:       eng,
		cache:        dashboardCache{repo: cache, metrics: metrics, log: log},
		metrics:      metrics,
		log:          log,
	}
}

// Get returns the user's profile or domain.ErrUserNotFound
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Update applies the non-nil fields of upd, creating the profile on first use,
// then recomputes the daily calorie goal
func (s *ProfileService) Update(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.UserProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		profile = &domain.UserProfile{UserID: userID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if upd.Sex != nil {
		profile.Sex = *upd.Sex
	}
	if upd.DateOfBirth != nil {
		profile.DateOfBirth = upd.DateOfBirth.UTC()
	}
	if upd.ActivityLevel != nil {
		profile.ActivityLevel = *upd.ActivityLevel
	}
	if upd.WeightGoal != nil {
		profile.WeightGoal = *upd.WeightGoal
	}
	if upd.TargetWeight != nil {
		if *upd.TargetWeight > 0 {
			target := *upd.TargetWeight
			profile.TargetWeight = &target
		} else {
			profile.TargetWeight = nil
		}
	}

	if err := s.validateProfile(profile); err != nil {
		return nil, err
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	kcal, err := s.RecalculateCalorieGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.DailyCalorieGoal = kcal

	s.cache.invalidatePattern(ctx, WeightOverviewPattern(userID))
	return profile, nil
}

func (s *ProfileService) validateProfile(p *domain.UserProfile) error {
	switch {
	case !p.Sex.Valid():
		return fmt.Errorf("%w: sex is required", domain.ErrInvalidInput)
	case p.DateOfBirth.IsZero():
		return fmt.Errorf("%w: date_of_birth is required", domain.ErrInvalidInput)
	case !p.DateOfBirth.Before(s.engine.Now()):
		return fmt.Errorf("%w: date_of_birth must be in the past", domain.ErrInvalidInput)
	case !p.ActivityLevel.Valid():
		return fmt.Errorf("%w: activity_level is required", domain.ErrInvalidInput)
	case !p.WeightGoal.Valid():
		return fmt.Errorf("%w: weight_goal is required", domain.ErrInvalidInput)
	}
	return nil
}

// RecalculateCalorieGoal recomputes the goal from the profile and the latest
// measurement and stores it. Without a measurement the default goal applies.
func (s *ProfileService) RecalculateCalorieGoal(ctx context.Context, userID string) (int, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}

	latest, err := s.measurements.GetLatestByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to load latest measurement: %w", err)
	}

	kcal, err := s.engine.CalculateDailyCalories(*profile, latest)
	if err != nil {
		return 0, err
	}

	if err := s.profiles.UpdateCalorieGoal(ctx, userID, kcal); err != nil {
		return 0, fmt.Errorf("failed to store calorie goal: %w", err)
	}

	s.metrics.CalorieGoalRecalculated(ctx, profile.WeightGoal.String())
	s.log.Infow("calorie goal recalculated", "user_id", userID, "kcal", kcal)

	// every cached day shows the goal
	s.cache.invalidatePattern(ctx, DailyStatsPattern(userID))
	return kcal, nil
}

// MetabolicBreakdown explains the current goal using the latest measurement
func (s *ProfileService) MetabolicBreakdown(ctx context.Context, userID string) (*domain.MetabolicBreakdown, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	latest, err := s.measurements.GetLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest measurement: %w", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("%w: no measurements recorded", domain.ErrNotFound)
	}

	breakdown, err := s.engine.MetabolicBreakdown(*profile, latest.Height, latest.Weight)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}
