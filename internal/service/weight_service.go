package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// WeightService serves the weight-tracking views. Every view is computed from
// the full measurement history and the profile's goal settings.
type WeightService struct {
	measurements domain.MeasurementRepository
	profiles     domain.ProfileRepository
	engine       *engine.Engine
	cache        dashboardCache
	overviewTTL  time.Duration
}

// NewWeightService creates a new weight service
func NewWeightService(
	measurements domain.MeasurementRepository,
	profiles domain.ProfileRepository,
	cache domain.CacheRepository,
	eng *engine.Engine,
	overviewTTL time.Duration,
	metrics *telemetry.Instruments,
	log *logger.Logger,
) *WeightService {
	return &WeightService{
		measurements: measurements,
		profiles:     profiles,
		engine:       eng,
		cache:        dashboardCache{repo: cache, metrics: metrics, log: log},
		overviewTTL:  overviewTTL,
	}
}

// weightInputs is what every view needs
type weightInputs struct {
	profile      *domain.UserProfile
	measurements []domain.Measurement
}

func (in weightInputs) target() *float64 {
	if in.profile.HasTarget() {
		return in.profile.TargetWeight
	}
	return nil
}

func (in weightInputs) goal() *domain.WeightGoal {
	if in.profile.WeightGoal.Valid() {
		goal := in.profile.WeightGoal
		return &goal
	}
	return nil
}

func (s *WeightService) load(ctx context.Context, userID string) (weightInputs, error) {
	var in weightInputs

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.profiles.GetByUserID(gCtx, userID)
		if err != nil {
			return err
		}
		in.profile = profile
		return nil
	})

	g.Go(func() error {
		ms, err := s.measurements.ListByUser(gCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to list measurements: %w", err)
		}
		in.measurements = ms
		return nil
	})

	if err := g.Wait(); err != nil {
		return weightInputs{}, err
	}
	return in, nil
}

// Data returns the raw history together with the goal settings
func (s *WeightService) Data(ctx context.Context, userID string) (*domain.WeightData, error) {
	in, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.WeightData{
		TargetWeight: in.target(),
		WeightGoal:   in.profile.WeightGoal,
		Measurements: in.measurements,
	}, nil
}

// Progress tracks the history against the target weight
func (s *WeightService) Progress(ctx context.Context, userID string) (*domain.WeightProgress, error) {
	in, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := s.engine.CalculateWeightProgress(in.measurements, in.target(), in.goal())
	return &progress, nil
}

// Trend summarizes the change over one look-back window
func (s *WeightService) Trend(ctx context.Context, userID string, period domain.Period) (*domain.WeightTrend, error) {
	ms, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	trend := s.engine.CalculateWeightTrend(ms, period)
	return &trend, nil
}

// Chart returns chart points plus the synthetic goal point
func (s *WeightService) Chart(ctx context.Context, userID string) ([]domain.ChartDataPoint, error) {
	in, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.PrepareChartData(in.measurements, in.target()), nil
}

// Stats reports tracking consistency
func (s *WeightService) Stats(ctx context.Context, userID string) (*domain.ProgressStats, error) {
	ms, err := s.measurements.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	stats := s.engine.CalculateProgressStats(ms)
	return &stats, nil
}

// BodyMetrics classifies the latest measurement. Returns domain.ErrNotFound
// when nothing has been recorded yet.
func (s *WeightService) BodyMetrics(ctx context.Context, userID string) (*domain.BodyMetrics, error) {
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

	metrics, err := engine.CalculateBodyMetrics(latest.Weight, latest.Height, profile.Sex)
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Overview builds the whole weight dashboard in one pass and caches it
func (s *WeightService) Overview(ctx context.Context, userID string) (*domain.WeightOverview, error) {
	key := WeightOverviewKey(userID, s.engine.Now())

	var cached domain.WeightOverview
	if s.cache.get(ctx, "weight_overview", key, &cached) {
		return &cached, nil
	}

	in, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &domain.WeightOverview{
		Trends: make(map[domain.Period]domain.WeightTrend, len(domain.Periods)),
	}
	for _, p := range domain.Periods {
		overview.Trends[p] = s.engine.CalculateWeightTrend(in.measurements, p)
	}
	overview.Progress = s.engine.CalculateWeightProgress(in.measurements, in.target(), in.goal())
	overview.Stats = s.engine.CalculateProgressStats(in.measurements)
	overview.Chart = s.engine.PrepareChartData(in.measurements, in.target())
	overview.Message = engine.MotivationalMessage(overview.Progress, in.goal())

	if n := len(in.measurements); n > 0 {
		latest := in.measurements[n-1]
		if metrics, err := engine.CalculateBodyMetrics(latest.Weight, latest.Height, in.profile.Sex); err == nil {
			overview.BodyMetrics = &metrics
		}
	}

	s.cache.set(ctx, "weight_overview", key, overview, s.overviewTTL)
	return overview, nil
}
