package service

import (
	"context"
	"encoding/json"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/mansoorceksport/nutrimetrics/pkg/logger"
	"github.com/oklog/ulid/v2"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedEngine() *engine.Engine {
	return engine.NewWithClock(func() time.Time { return fixedNow })
}

var testLog = logger.NewNop()

type fakeProfiles struct {
	mu   sync.Mutex
	byID map[string]domain.UserProfile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byID: map[string]domain.UserProfile{}}
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) Upsert(_ context.Context, p *domain.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[p.UserID] = *p
	return nil
}

func (f *fakeProfiles) UpdateCalorieGoal(_ context.Context, userID string, kcal int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	p.DailyCalorieGoal = kcal
	f.byID[userID] = p
	return nil
}

type fakeMeasurements struct {
	mu  sync.Mutex
	all []domain.Measurement
}

func (f *fakeMeasurements) Create(_ context.Context, m *domain.Measurement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == "" {
		m.ID = ulid.Make().String()
	}
	f.all = append(f.all, *m)
	return nil
}

func (f *fakeMeasurements) ListByUser(_ context.Context, userID string) ([]domain.Measurement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Measurement{}
	for _, m := range f.all {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeMeasurements) GetLatestByUser(ctx context.Context, userID string) (*domain.Measurement, error) {
	ms, _ := f.ListByUser(ctx, userID)
	if len(ms) == 0 {
		return nil, nil
	}
	return &ms[len(ms)-1], nil
}

type fakeFoods struct {
	mu   sync.Mutex
	byID map[string]domain.FoodNutritionProfile
}

func newFakeFoods(foods ...domain.FoodNutritionProfile) *fakeFoods {
	f := &fakeFoods{byID: map[string]domain.FoodNutritionProfile{}}
	for _, food := range foods {
		f.byID[food.ID] = food
	}
	return f
}

func (f *fakeFoods) Create(_ context.Context, food *domain.FoodNutritionProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if food.ID == "" {
		food.ID = ulid.Make().String()
	}
	f.byID[food.ID] = *food
	return nil
}

func (f *fakeFoods) GetByID(_ context.Context, id string) (*domain.FoodNutritionProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	food, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &food, nil
}

func (f *fakeFoods) GetByIDs(_ context.Context, ids []string) (map[string]*domain.FoodNutritionProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]*domain.FoodNutritionProfile{}
	for _, id := range ids {
		if food, ok := f.byID[id]; ok {
			food := food
			out[id] = &food
		}
	}
	return out, nil
}

type fakeEntries struct {
	mu   sync.Mutex
	byID map[string]domain.FoodConsumptionRecord
}

func newFakeEntries() *fakeEntries {
	return &fakeEntries{byID: map[string]domain.FoodConsumptionRecord{}}
}

func (f *fakeEntries) Create(_ context.Context, e *domain.FoodConsumptionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e.ID == "" {
		e.ID = ulid.Make().String()
	}
	f.byID[e.ID] = *e
	return nil
}

func (f *fakeEntries) GetByID(_ context.Context, id string) (*domain.FoodConsumptionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

func (f *fakeEntries) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEntries) ListByUserAndDay(_ context.Context, userID string, day time.Time) ([]domain.FoodConsumptionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := day.UTC().Truncate(24 * time.Hour)
	end := start.Add(24 * time.Hour)
	out := []domain.FoodConsumptionRecord{}
	for _, e := range f.byID {
		if e.UserID == userID && !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeCache stores JSON like the Redis implementation
type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return domain.ErrCacheMiss
	}
	c.hits++
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}
