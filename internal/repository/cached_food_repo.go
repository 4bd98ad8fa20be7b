package repository

import (
	"context"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

const (
	foodByIDKeyPrefix = "food:id:"
	foodCacheTTL      = time.Hour
)

// CachedFoodRepository wraps a food repository with Redis caching. Foods are
// never edited after creation, so cached entries only expire.
type CachedFoodRepository struct {
	inner domain.FoodRepository
	cache domain.CacheRepository
}

// NewCachedFoodRepository creates a new cached food repository
func NewCachedFoodRepository(inner domain.FoodRepository, cache domain.CacheRepository) *CachedFoodRepository {
	return &CachedFoodRepository{
		inner: inner,
		cache: cache,
	}
}

// Create stores the food and primes the cache
func (r *CachedFoodRepository) Create(ctx context.Context, food *domain.FoodNutritionProfile) error {
	if err := r.inner.Create(ctx, food); err != nil {
		return err
	}

	// Store in cache (ignore cache errors)
	_ = r.cache.Set(ctx, foodByIDKeyPrefix+food.ID, food, foodCacheTTL)
	return nil
}

// GetByID retrieves a food with caching
func (r *CachedFoodRepository) GetByID(ctx context.Context, id string) (*domain.FoodNutritionProfile, error) {
	key := foodByIDKeyPrefix + id

	var food domain.FoodNutritionProfile
	if err := r.cache.Get(ctx, key, &food); err == nil {
		return &food, nil
	}

	result, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, key, result, foodCacheTTL)
	return result, nil
}

// GetByIDs serves what it can from cache and loads the rest in one query
func (r *CachedFoodRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.FoodNutritionProfile, error) {
	foods := make(map[string]*domain.FoodNutritionProfile, len(ids))

	var missing []string
	for _, id := range ids {
		if _, seen := foods[id]; seen {
			continue
		}
		var food domain.FoodNutritionProfile
		if err := r.cache.Get(ctx, foodByIDKeyPrefix+id, &food); err == nil {
			foods[id] = &food
			continue
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return foods, nil
	}

	loaded, err := r.inner.GetByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, food := range loaded {
		foods[id] = food
		_ = r.cache.Set(ctx, foodByIDKeyPrefix+id, food, foodCacheTTL)
	}
	return foods, nil
}
