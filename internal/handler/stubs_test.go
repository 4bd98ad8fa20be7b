package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/middleware"
	"github.com/stretchr/testify/require"
)

type stubProfiles struct {
	get         func(string) (*domain.UserProfile, error)
	update      func(string, domain.ProfileUpdate) (*domain.UserProfile, error)
	recalculate func(string) (int, error)
	breakdown   func(string) (*domain.MetabolicBreakdown, error)
}

func (s stubProfiles) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	return s.get(userID)
}

func (s stubProfiles) Update(_ context.Context, userID string, upd domain.ProfileUpdate) (*domain.UserProfile, error) {
	return s.update(userID, upd)
}

func (s stubProfiles) RecalculateCalorieGoal(_ context.Context, userID string) (int, error) {
	return s.recalculate(userID)
}

func (s stubProfiles) MetabolicBreakdown(_ context.Context, userID string) (*domain.MetabolicBreakdown, error) {
	return s.breakdown(userID)
}

type stubMeasurements struct {
	record func(string, domain.MeasurementInput) (*domain.Measurement, error)
	list   func(string) ([]domain.Measurement, error)
}

func (s stubMeasurements) Record(_ context.Context, userID string, in domain.MeasurementInput) (*domain.Measurement, error) {
	return s.record(userID, in)
}

func (s stubMeasurements) List(_ context.Context, userID string) ([]domain.Measurement, error) {
	return s.list(userID)
}

type stubWeight struct {
	trend    func(string, domain.Period) (*domain.WeightTrend, error)
	overview func(string) (*domain.WeightOverview, error)
	metrics  func(string) (*domain.BodyMetrics, error)
}

func (s stubWeight) Data(context.Context, string) (*domain.WeightData, error) {
	return &domain.WeightData{Measurements: []domain.Measurement{}}, nil
}

func (s stubWeight) Progress(context.Context, string) (*domain.WeightProgress, error) {
	return &domain.WeightProgress{}, nil
}

func (s stubWeight) Trend(_ context.Context, userID string, p domain.Period) (*domain.WeightTrend, error) {
	return s.trend(userID, p)
}

func (s stubWeight) Chart(context.Context, string) ([]domain.ChartDataPoint, error) {
	return []domain.ChartDataPoint{}, nil
}

func (s stubWeight) Stats(context.Context, string) (*domain.ProgressStats, error) {
	return &domain.ProgressStats{}, nil
}

func (s stubWeight) BodyMetrics(_ context.Context, userID string) (*domain.BodyMetrics, error) {
	return s.metrics(userID)
}

func (s stubWeight) Overview(_ context.Context, userID string) (*domain.WeightOverview, error) {
	return s.overview(userID)
}

type stubNutrition struct {
	createFood func(string, domain.FoodNutritionProfile) (*domain.FoodNutritionProfile, error)
	getFood    func(string) (*domain.FoodNutritionProfile, error)
	logFood    func(string, domain.FoodEntryInput) (*domain.FoodConsumptionRecord, error)
	remove     func(string, string) error
	daily      func(string, time.Time) (*domain.DailyStats, error)
}

func (s stubNutrition) CreateFood(_ context.Context, userID string, food domain.FoodNutritionProfile) (*domain.FoodNutritionProfile, error) {
	return s.createFood(userID, food)
}

func (s stubNutrition) GetFood(_ context.Context, id string) (*domain.FoodNutritionProfile, error) {
	return s.getFood(id)
}

func (s stubNutrition) LogFood(_ context.Context, userID string, in domain.FoodEntryInput) (*domain.FoodConsumptionRecord, error) {
	return s.logFood(userID, in)
}

func (s stubNutrition) RemoveEntry(_ context.Context, userID, entryID string) error {
	return s.remove(userID, entryID)
}

func (s stubNutrition) DailyStats(_ context.Context, userID string, day time.Time) (*domain.DailyStats, error) {
	return s.daily(userID, day)
}

// asUser stands in for VerifyToken
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}
