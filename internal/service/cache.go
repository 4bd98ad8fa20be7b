package service

import (
	"context"
	"errors"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/telemetry"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
)

const (
	weightOverviewKeyPrefix = "weight:overview:"
	dailyStatsKeyPrefix     = "nutrition:daily:"

	dayKeyLayout = "2006-01-02"
)

// WeightOverviewKey is the cache key of a user's weight dashboard for a UTC day.
// Trend windows and the goal point move with the clock, so entries never outlive the day.
func WeightOverviewKey(userID string, day time.Time) string {
	return weightOverviewKeyPrefix + userID + ":" + day.UTC().Format(dayKeyLayout)
}

// WeightOverviewPattern matches every cached dashboard of a user
func WeightOverviewPattern(userID string) string {
	return weightOverviewKeyPrefix + userID + ":*"
}

// DailyStatsKey is the cache key of one user's nutrition stats for a UTC day
func DailyStatsKey(userID string, day time.Time) string {
	return dailyStatsKeyPrefix + userID + ":" + day.UTC().Format(dayKeyLayout)
}

// DailyStatsPattern matches every cached day of a user
func DailyStatsPattern(userID string) string {
	return dailyStatsKeyPrefix + userID + ":*"
}

// dashboardCache wraps a CacheRepository with the read-through rules shared by
// the services: cache errors are logged and never fail a request.
type dashboardCache struct {
	repo    domain.CacheRepository
	metrics *telemetry.Instruments
	log     *logger.Logger
}

// get reports whether dest was filled from cache
func (c dashboardCache) get(ctx context.Context, name, key string, dest interface{}) bool {
	if c.repo == nil {
		return false
	}
	err := c.repo.Get(ctx, key, dest)
	switch {
	case err == nil:
		c.metrics.CacheResult(ctx, name, true)
		return true
	case errors.Is(err, domain.ErrCacheMiss):
	default:
		c.log.Warnw("cache read failed", "cache", name, "key", key, "error", err)
	}
	c.metrics.CacheResult(ctx, name, false)
	return false
}

func (c dashboardCache) set(ctx context.Context, name, key string, value interface{}, ttl time.Duration) {
	if c.repo == nil || ttl <= 0 {
		return
	}
	if err := c.repo.Set(ctx, key, value, ttl); err != nil {
		c.log.Warnw("cache write failed", "cache", name, "key", key, "error", err)
	}
}

func (c dashboardCache) invalidate(ctx context.Context, keys ...string) {
	if c.repo == nil {
		return
	}
	if err := c.repo.Delete(ctx, keys...); err != nil {
		c.log.Warnw("cache invalidation failed", "keys", keys, "error", err)
	}
}

func (c dashboardCache) invalidatePattern(ctx context.Context, pattern string) {
	if c.repo == nil {
		return
	}
	if err := c.repo.DeleteByPattern(ctx, pattern); err != nil {
		c.log.Warnw("cache invalidation failed", "pattern", pattern, "error", err)
	}
}
