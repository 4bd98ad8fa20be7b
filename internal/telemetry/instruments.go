package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "nutrimetrics"

// Instruments are the business counters emitted by the services
type Instruments struct {
	CalorieGoalRecalculations metric.Int64Counter
	MeasurementsRecorded      metric.Int64Counter
	FoodEntriesLogged         metric.Int64Counter
	CacheHits                 metric.Int64Counter
	CacheMisses               metric.Int64Counter
}

// NewInstruments creates the counters from the global meter provider.
// Before Initialize (or when telemetry is disabled) they are no-ops.
func NewInstruments() (*Instruments, error) {
	return NewInstrumentsFrom(otel.GetMeterProvider())
}

// NewInstrumentsFrom creates the counters from a specific provider
func NewInstrumentsFrom(mp metric.MeterProvider) (*Instruments, error) {
	meter := mp.Meter(meterName)

	var (
		in  Instruments
		err error
	)
	if in.CalorieGoalRecalculations, err = meter.Int64Counter("nutrimetrics.calorie_goal.recalculations",
		metric.WithDescription("Daily calorie goals recomputed")); err != nil {
		return nil, err
	}
	if in.MeasurementsRecorded, err = meter.Int64Counter("nutrimetrics.measurements.recorded",
		metric.WithDescription("Body measurements stored")); err != nil {
		return nil, err
	}
	if in.FoodEntriesLogged, err = meter.Int64Counter("nutrimetrics.food_entries.logged",
		metric.WithDescription("Food consumption records stored")); err != nil {
		return nil, err
	}
	if in.CacheHits, err = meter.Int64Counter("nutrimetrics.cache.hits"); err != nil {
		return nil, err
	}
	if in.CacheMisses, err = meter.Int64Counter("nutrimetrics.cache.misses"); err != nil {
		return nil, err
	}
	return &in, nil
}

// CacheResult records a hit or miss for the named dashboard
func (in *Instruments) CacheResult(ctx context.Context, name string, hit bool) {
	if in == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("cache.name", name))
	if hit {
		in.CacheHits.Add(ctx, 1, attrs)
		return
	}
	in.CacheMisses.Add(ctx, 1, attrs)
}

// CalorieGoalRecalculated counts one recomputed goal, tagged with the weight goal
func (in *Instruments) CalorieGoalRecalculated(ctx context.Context, goal string) {
	if in == nil {
		return
	}
	in.CalorieGoalRecalculations.Add(ctx, 1, metric.WithAttributes(attribute.String("weight_goal", goal)))
}

// MeasurementRecorded counts one stored measurement
func (in *Instruments) MeasurementRecorded(ctx context.Context) {
	if in == nil {
		return
	}
	in.MeasurementsRecorded.Add(ctx, 1)
}

// FoodEntryLogged counts one stored consumption record, tagged with its meal
func (in *Instruments) FoodEntryLogged(ctx context.Context, meal string) {
	if in == nil {
		return
	}
	in.FoodEntriesLogged.Add(ctx, 1, metric.WithAttributes(attribute.String("meal", meal)))
}
