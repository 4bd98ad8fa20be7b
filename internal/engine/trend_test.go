package engine

import (
	"testing"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// daysAgo returns a measurement taken n days before fixedNow
func daysAgo(n int, weight float64) domain.Measurement {
	return domain.Measurement{
		Date:   fixedNow.AddDate(0, 0, -n),
		Weight: weight,
		Height: 180,
	}
}

func floatPtr(f float64) *float64 { return &f }

func goalPtr(g domain.WeightGoal) *domain.WeightGoal { return &g }

func TestCalculateWeightTrend(t *testing.T) {
	e := fixedEngine()

	tests := []struct {
		name         string
		measurements []domain.Measurement
		period       domain.Period
		wantChange   float64
		wantTrend    domain.TrendDirection
		wantVelocity float64
	}{
		{
			name:         "empty",
			measurements: nil,
			period:       domain.PeriodWeek,
			wantTrend:    domain.TrendStable,
		},
		{
			name:         "single point in window",
			measurements: []domain.Measurement{daysAgo(1, 80), daysAgo(20, 85)},
			period:       domain.PeriodWeek,
			wantTrend:    domain.TrendStable,
		},
		{
			name:         "one kilo lost in a week",
			measurements: []domain.Measurement{daysAgo(7, 80), daysAgo(0, 79)},
			period:       domain.PeriodWeek,
			wantChange:   -1,
			wantTrend:    domain.TrendDecreasing,
			wantVelocity: -1,
		},
		{
			name:         "unsorted input",
			measurements: []domain.Measurement{daysAgo(0, 81), daysAgo(14, 80), daysAgo(28, 79)},
			period:       domain.PeriodMonth,
			wantChange:   2,
			wantTrend:    domain.TrendIncreasing,
			wantVelocity: 0.5,
		},
		{
			name:         "small change is stable",
			measurements: []domain.Measurement{daysAgo(6, 80), daysAgo(2, 80.15)},
			period:       domain.PeriodWeek,
			wantChange:   0.15,
			wantTrend:    domain.TrendStable,
			wantVelocity: 0.2625,
		},
		{
			name:         "zero-day window has no velocity",
			measurements: []domain.Measurement{daysAgo(3, 80), daysAgo(3, 81)},
			period:       domain.PeriodWeek,
			wantChange:   1,
			wantTrend:    domain.TrendIncreasing,
		},
		{
			name:         "old points excluded",
			measurements: []domain.Measurement{daysAgo(400, 100), daysAgo(300, 90), daysAgo(100, 85)},
			period:       domain.PeriodYear,
			wantChange:   -5,
			wantTrend:    domain.TrendDecreasing,
			wantVelocity: -5.0 / 200 * 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.CalculateWeightTrend(tt.measurements, tt.period)

			assert.Equal(t, tt.period, got.Period)
			assert.InDelta(t, tt.wantChange, got.Change, 1e-9)
			assert.Equal(t, tt.wantTrend, got.Trend)
			assert.InDelta(t, tt.wantVelocity, got.VelocityKgPerWeek, 1e-9)
		})
	}
}

func TestCalculateWeightTrend_DoesNotMutateInput(t *testing.T) {
	e := fixedEngine()
	input := []domain.Measurement{daysAgo(0, 79), daysAgo(5, 80), daysAgo(2, 81)}
	before := append([]domain.Measurement(nil), input...)

	e.CalculateWeightTrend(input, domain.PeriodWeek)
	e.CalculateWeightProgress(input, floatPtr(75), goalPtr(domain.GoalLoseWeight))
	e.CalculateProgressStats(input)
	e.PrepareChartData(input, floatPtr(75))

	assert.Equal(t, before, input)
}

func TestCalculateWeightProgress(t *testing.T) {
	e := fixedEngine()

	t.Run("empty history", func(t *testing.T) {
		got := e.CalculateWeightProgress(nil, floatPtr(70), goalPtr(domain.GoalLoseWeight))

		assert.Zero(t, got.CurrentWeight)
		assert.Nil(t, got.StartWeight)
		assert.False(t, got.IsOnTrack)
		require.NotNil(t, got.TargetWeight)
		assert.Equal(t, 70.0, *got.TargetWeight)
	})

	t.Run("no target", func(t *testing.T) {
		got := e.CalculateWeightProgress([]domain.Measurement{daysAgo(10, 82), daysAgo(0, 80)}, nil, nil)

		assert.Equal(t, 80.0, got.CurrentWeight)
		require.NotNil(t, got.StartWeight)
		assert.Equal(t, 82.0, *got.StartWeight)
		assert.InDelta(t, -2, got.WeightChange, 1e-9)
		assert.Zero(t, got.ProgressPercentage)
		assert.True(t, got.IsOnTrack)
		assert.Nil(t, got.DaysToGoal)
		assert.InDelta(t, 81, got.WeeklyAverage, 1e-9)
	})

	t.Run("losing too fast", func(t *testing.T) {
		ms := []domain.Measurement{daysAgo(20, 90), daysAgo(7, 85), daysAgo(0, 84)}
		got := e.CalculateWeightProgress(ms, floatPtr(80), goalPtr(domain.GoalLoseWeight))

		assert.InDelta(t, 60, got.ProgressPercentage, 1e-9)
		assert.False(t, got.IsOnTrack)
		require.NotNil(t, got.DaysToGoal)
		assert.Equal(t, 28, *got.DaysToGoal)
		assert.InDelta(t, (90.0+85+84)/3, got.WeeklyAverage, 1e-9)
	})

	t.Run("losing on pace", func(t *testing.T) {
		ms := []domain.Measurement{daysAgo(20, 90), daysAgo(7, 85), daysAgo(0, 84.5)}
		got := e.CalculateWeightProgress(ms, floatPtr(80), goalPtr(domain.GoalLoseWeight))

		assert.True(t, got.IsOnTrack)
		require.NotNil(t, got.DaysToGoal)
		assert.Equal(t, 63, *got.DaysToGoal)
	})

	t.Run("progress capped at 100", func(t *testing.T) {
		ms := []domain.Measurement{daysAgo(60, 90), daysAgo(0, 78)}
		got := e.CalculateWeightProgress(ms, floatPtr(80), goalPtr(domain.GoalLoseWeight))

		assert.Equal(t, 100.0, got.ProgressPercentage)
	})

	t.Run("target equals start", func(t *testing.T) {
		ms := []domain.Measurement{daysAgo(3, 80), daysAgo(0, 80.1)}
		got := e.CalculateWeightProgress(ms, floatPtr(80), goalPtr(domain.GoalMaintainWeight))

		assert.Zero(t, got.ProgressPercentage)
		assert.True(t, got.IsOnTrack)
	})

	t.Run("no recent velocity leaves days to goal unset", func(t *testing.T) {
		ms := []domain.Measurement{daysAgo(40, 70), daysAgo(30, 71)}
		got := e.CalculateWeightProgress(ms, floatPtr(75), goalPtr(domain.GoalGainWeight))

		assert.Nil(t, got.DaysToGoal)
		assert.InDelta(t, 20, got.ProgressPercentage, 1e-9)
		// expected +0.25 kg/week, observed 0
		assert.True(t, got.IsOnTrack)
	})

	t.Run("weekly average uses the last four", func(t *testing.T) {
		ms := []domain.Measurement{
			daysAgo(50, 100), daysAgo(40, 100),
			daysAgo(30, 84), daysAgo(20, 83), daysAgo(10, 82), daysAgo(0, 81),
		}
		got := e.CalculateWeightProgress(ms, nil, nil)

		assert.InDelta(t, 82.5, got.WeeklyAverage, 1e-9)
	})
}

func TestCalculateStreaks(t *testing.T) {
	ms := []domain.Measurement{
		daysAgo(25, 80), daysAgo(22, 80), daysAgo(15, 80), // gaps 3, 7
		daysAgo(5, 80), daysAgo(0, 80), // gap 10 breaks, then 5
	}

	assert.Equal(t, []int{3, 2}, CalculateStreaks(ms))
	assert.Nil(t, CalculateStreaks(nil))
	assert.Equal(t, []int{1}, CalculateStreaks(ms[:1]))
}

func TestCalculateProgressStats(t *testing.T) {
	e := fixedEngine()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, domain.ProgressStats{}, e.CalculateProgressStats(nil))
	})

	t.Run("two streaks", func(t *testing.T) {
		ms := []domain.Measurement{
			daysAgo(0, 79), daysAgo(25, 82), daysAgo(22, 81.5),
			daysAgo(15, 81), daysAgo(7, 80),
		}
		got := e.CalculateProgressStats(ms)

		assert.Equal(t, 5, got.TotalMeasurements)
		assert.Equal(t, 26, got.TrackingDays)
		assert.Equal(t, 3, got.LongestStreak)
		assert.Equal(t, 2, got.CurrentStreak)
		assert.InDelta(t, -1, got.AverageWeeklyChange, 1e-9)
	})

	t.Run("single measurement", func(t *testing.T) {
		got := e.CalculateProgressStats([]domain.Measurement{daysAgo(3, 80)})

		assert.Equal(t, 1, got.TotalMeasurements)
		assert.Equal(t, 1, got.TrackingDays)
		assert.Equal(t, 1, got.LongestStreak)
		assert.Equal(t, 1, got.CurrentStreak)
	})
}

func TestPrepareChartData(t *testing.T) {
	e := fixedEngine()
	ms := []domain.Measurement{daysAgo(0, 79), daysAgo(14, 81), daysAgo(7, 80)}

	t.Run("with target", func(t *testing.T) {
		points := e.PrepareChartData(ms, floatPtr(75))
		require.Len(t, points, 4)

		assert.Equal(t, 81.0, points[0].Weight)
		assert.Equal(t, 80.0, points[1].Weight)
		assert.Equal(t, 79.0, points[2].Weight)
		for _, p := range points[:3] {
			assert.False(t, p.IsGoal)
			require.NotNil(t, p.Target)
			assert.Equal(t, 75.0, *p.Target)
		}

		goal := points[3]
		assert.True(t, goal.IsGoal)
		assert.Equal(t, 75.0, goal.Weight)
		assert.True(t, time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC).Equal(goal.Date), "goal date %s", goal.Date)
	})

	t.Run("without target", func(t *testing.T) {
		points := e.PrepareChartData(ms, nil)
		require.Len(t, points, 3)
		for _, p := range points {
			assert.Nil(t, p.Target)
			assert.False(t, p.IsGoal)
		}
	})

	t.Run("empty history has no goal point", func(t *testing.T) {
		assert.Empty(t, e.PrepareChartData(nil, floatPtr(75)))
	})
}

func TestChartData_RoundTrip(t *testing.T) {
	e := fixedEngine()
	ms := []domain.Measurement{
		daysAgo(0, 84.5), daysAgo(20, 90), daysAgo(7, 85), daysAgo(3, 84.8), daysAgo(60, 92),
	}
	target := floatPtr(80)
	goal := goalPtr(domain.GoalLoseWeight)

	replayed := MeasurementsFromChart(e.PrepareChartData(ms, target))
	require.Len(t, replayed, len(ms))

	for _, period := range domain.Periods {
		assert.Equal(t, e.CalculateWeightTrend(ms, period), e.CalculateWeightTrend(replayed, period), "period %s", period)
	}
	assert.Equal(t, e.CalculateWeightProgress(ms, target, goal), e.CalculateWeightProgress(replayed, target, goal))
	assert.Equal(t, e.CalculateProgressStats(ms), e.CalculateProgressStats(replayed))
}
