package engine

import (
	"math"
	"sort"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

const (
	// stableThreshold is the absolute change (kg) below which a trend is stable
	stableThreshold = 0.2

	// onTrackTolerance is the allowed deviation (kg/week) from the expected rate
	onTrackTolerance = 0.3

	// streakGapDays is the largest gap between measurements that keeps a streak alive
	streakGapDays = 7

	// weeklyAverageWindow is how many of the latest measurements feed the weekly average
	weeklyAverageWindow = 4

	// goalPointLeadDays places the synthetic goal point this far in the future
	goalPointLeadDays = 30
)

// expectedWeeklyRate is the kg/week change each goal aims for
var expectedWeeklyRate = map[domain.WeightGoal]float64{
	domain.GoalLoseWeight:     -0.5,
	domain.GoalMaintainWeight: 0,
	domain.GoalGainWeight:     0.25,
}

// sortedByDate returns a copy of ms ordered by date ascending. The sort is
// stable so same-day duplicates keep their input order.
func sortedByDate(ms []domain.Measurement) []domain.Measurement {
	sorted := make([]domain.Measurement, len(ms))
	copy(sorted, ms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// CalculateWeightTrend measures weight change over the last period days
func (e *Engine) CalculateWeightTrend(ms []domain.Measurement, period domain.Period) domain.WeightTrend {
	cutoff := e.now().Add(-time.Duration(period.Days()) * day)

	recent := make([]domain.Measurement, 0, len(ms))
	for _, m := range ms {
		if !m.Date.Before(cutoff) {
			recent = append(recent, m)
		}
	}

	result := domain.WeightTrend{Period: period, Trend: domain.TrendStable}
	if len(recent) < 2 {
		return result
	}

	recent = sortedByDate(recent)
	first, last := recent[0], recent[len(recent)-1]
	change := last.Weight - first.Weight

	result.Change = change
	if days := daysBetween(first.Date, last.Date); days > 0 {
		result.VelocityKgPerWeek = change / days * 7
	}

	switch {
	case math.Abs(change) < stableThreshold:
		result.Trend = domain.TrendStable
	case change > 0:
		result.Trend = domain.TrendIncreasing
	default:
		result.Trend = domain.TrendDecreasing
	}
	return result
}

// CalculateWeightProgress evaluates the full history against an optional
// target weight and goal.
func (e *Engine) CalculateWeightProgress(ms []domain.Measurement, targetWeight *float64, goal *domain.WeightGoal) domain.WeightProgress {
	var target *float64
	if targetWeight != nil {
		t := *targetWeight
		target = &t
	}

	if len(ms) == 0 {
		return domain.WeightProgress{TargetWeight: target}
	}

	sorted := sortedByDate(ms)
	current := sorted[len(sorted)-1].Weight
	start := sorted[0].Weight

	progress := domain.WeightProgress{
		CurrentWeight: current,
		TargetWeight:  target,
		StartWeight:   &start,
		WeightChange:  current - start,
		IsOnTrack:     true,
		WeeklyAverage: weeklyAverage(sorted),
	}

	if target == nil || *target <= 0 || goal == nil || !goal.Valid() {
		return progress
	}

	if total := math.Abs(*target - start); total > 0 {
		progress.ProgressPercentage = math.Min(100, math.Abs(progress.WeightChange)/total*100)
	}

	weekly := e.CalculateWeightTrend(sorted, domain.PeriodWeek)
	if velocity := weekly.VelocityKgPerWeek; velocity != 0 {
		days := int(math.Ceil(math.Abs(*target-current) / math.Abs(velocity) * 7))
		progress.DaysToGoal = &days
	}
	progress.IsOnTrack = math.Abs(weekly.VelocityKgPerWeek-expectedWeeklyRate[*goal]) < onTrackTolerance

	return progress
}

// weeklyAverage is the mean weight of the last few measurements of a sorted series
func weeklyAverage(sorted []domain.Measurement) float64 {
	window := sorted
	if len(window) > weeklyAverageWindow {
		window = window[len(window)-weeklyAverageWindow:]
	}
	var sum float64
	for _, m := range window {
		sum += m.Weight
	}
	return sum / float64(len(window))
}

// CalculateStreaks returns the length of every streak in chronological order.
// Measurements at most a week apart belong to the same streak.
func CalculateStreaks(ms []domain.Measurement) []int {
	if len(ms) == 0 {
		return nil
	}
	sorted := sortedByDate(ms)

	var streaks []int
	current := 1
	for i := 1; i < len(sorted); i++ {
		if daysBetween(sorted[i-1].Date, sorted[i].Date) <= streakGapDays {
			current++
			continue
		}
		streaks = append(streaks, current)
		current = 1
	}
	return append(streaks, current)
}

// CalculateProgressStats summarizes tracking consistency
func (e *Engine) CalculateProgressStats(ms []domain.Measurement) domain.ProgressStats {
	if len(ms) == 0 {
		return domain.ProgressStats{}
	}

	sorted := sortedByDate(ms)
	span := daysBetween(sorted[0].Date, sorted[len(sorted)-1].Date)

	streaks := CalculateStreaks(sorted)
	longest := 0
	for _, s := range streaks {
		if s > longest {
			longest = s
		}
	}

	return domain.ProgressStats{
		TotalMeasurements:   len(sorted),
		TrackingDays:        int(math.Ceil(span)) + 1,
		LongestStreak:       longest,
		CurrentStreak:       streaks[len(streaks)-1],
		AverageWeeklyChange: e.CalculateWeightTrend(sorted, domain.PeriodWeek).VelocityKgPerWeek,
	}
}

// PrepareChartData projects the history into chart points. When a target is
// set, a goal point 30 days ahead anchors the goal line.
func (e *Engine) PrepareChartData(ms []domain.Measurement, targetWeight *float64) []domain.ChartDataPoint {
	sorted := sortedByDate(ms)
	points := make([]domain.ChartDataPoint, 0, len(sorted)+1)

	for _, m := range sorted {
		points = append(points, domain.ChartDataPoint{
			Date:   m.Date,
			Weight: m.Weight,
			Target: copyFloat(targetWeight),
		})
	}

	if targetWeight != nil && *targetWeight > 0 && len(points) > 0 {
		goalDate := e.now().UTC().Add(goalPointLeadDays * day).Truncate(day)
		points = append(points, domain.ChartDataPoint{
			Date:   goalDate,
			Weight: *targetWeight,
			Target: copyFloat(targetWeight),
			IsGoal: true,
		})
	}
	return points
}

// MeasurementsFromChart turns chart points back into measurements, dropping
// the synthetic goal point.
func MeasurementsFromChart(points []domain.ChartDataPoint) []domain.Measurement {
	ms := make([]domain.Measurement, 0, len(points))
	for _, p := range points {
		if p.IsGoal {
			continue
		}
		ms = append(ms, domain.Measurement{Date: p.Date, Weight: p.Weight})
	}
	return ms
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
