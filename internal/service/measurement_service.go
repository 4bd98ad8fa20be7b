package service

import (
	"context"
	"fmt"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
)

// MeasurementService records body measurements
type MeasurementService struct {
	measurements domain.MeasurementRepository
	profiles     domain.ProfileRepository
	profileSvc   *ProfileService
	engine       *engine.Engine
	cache        dashboardCache
	metrics      *telemetry.Instruments
	log          *logger.Logger
}

// NewMeasurementService creates a new measurement service
func NewMeasurementService(
	measurements domain.MeasurementRepository,
	profiles domain.ProfileRepository,
	profileSvc *ProfileService,
	cache domain.CacheRepository,
	eng *engine.Engine,
	metrics *telemetry.Instruments,
	log *logger.Logger,
) *MeasurementService {
	return &MeasurementService{
		measurements: measurements,
		profiles:     profiles,
		profileSvc:   profileSvc,
		engine:       eng,
		cache:        dashboardCache{repo: cache, metrics: metrics, log: log},
		metrics:      metrics,
		log:          log,
	}
}

// Record validates and stores a measurement with its BMI and FFMI, then
// refreshes the user's calorie goal
func (s *MeasurementService) Record(ctx context.Context, userID string, in domain.MeasurementInput) (*domain.Measurement, error) {
	if err := engine.ValidateMeasurement(in.Weight, in.Height); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	metrics, err := engine.CalculateBodyMetrics(in.Weight, in.Height, profile.Sex)
	if err != nil {
		return nil, err
	}

	date := s.engine.Now().UTC()
	if in.Date != nil {
		if in.Date.After(date) {
			return nil, fmt.Errorf("%w: measurement date is in the future", domain.ErrInvalidInput)
		}
		date = in.Date.UTC()
	}

	m := &domain.Measurement{
		UserID: userID,
		Date:   date,
		Weight: in.Weight,
		Height: in.Height,
		BMI:    metrics.BMI,
		FFMI:   metrics.FFMI,
	}
	if err := s.measurements.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save measurement: %w", err)
	}
	s.metrics.MeasurementRecorded(ctx)

	// The measurement is stored; a failed goal refresh is retried on the next write
	if _, err := s.profileSvc.RecalculateCalorieGoal(ctx, userID); err != nil {
		s.log.Warnw("calorie goal refresh failed", "user_id", userID, "error", err)
	}

	s.cache.invalidatePattern(ctx, WeightOverviewPattern(userID))
	return m, nil
}

// List returns the user's measurements oldest first
func (s *MeasurementService) List(ctx context.Context, userID string) ([]domain.Measurement, error) {
	ms, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return ms, nil
}
