package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"github.com/mansoorceksport/nutrimetrics/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestRespondError_Mapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: weight", domain.ErrInvalidMeasurement), fiber.StatusBadRequest},
		{fmt.Errorf("%w: meal", domain.ErrInvalidInput), fiber.StatusBadRequest},
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{fmt.Errorf("%w: food x", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{errors.New("mongo exploded"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tt.err, "do things") })

			status, env := do(t, app, "GET", "/", nil)
			assert.Equal(t, tt.status, status)
			assert.False(t, env.Success)
			assert.NotContains(t, env.Error, "mongo")
		})
	}
}

func TestProfileHandler(t *testing.T) {
	var gotUpdate domain.ProfileUpdate
	profiles := stubProfiles{
		get: func(userID string) (*domain.UserProfile, error) {
			if userID == "ghost" {
				return nil, domain.ErrUserNotFound
			}
			return &domain.UserProfile{UserID: userID, Sex: domain.SexFemale, ActivityLevel: domain.ActivityVeryActive, DailyCalorieGoal: 1900}, nil
		},
		update: func(userID string, upd domain.ProfileUpdate) (*domain.UserProfile, error) {
			gotUpdate = upd
			return &domain.UserProfile{UserID: userID, WeightGoal: *upd.WeightGoal, DailyCalorieGoal: 2100}, nil
		},
		recalculate: func(string) (int, error) { return 2394, nil },
		breakdown:   func(string) (*domain.MetabolicBreakdown, error) { return nil, domain.ErrNotFound },
	}
	h := NewProfileHandler(profiles)

	app := fiber.New()
	app.Use(asUser("u1"))
	app.Get("/profile", h.GetProfile)
	app.Put("/profile", h.UpdateProfile)
	app.Post("/profile/calorie-goal", h.RecalculateCalorieGoal)
	app.Get("/profile/metabolism", h.GetMetabolism)

	status, env := do(t, app, "GET", "/profile", nil)
	require.Equal(t, fiber.StatusOK, status)
	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, "Female", p["sex"])
	assert.Equal(t, "VeryActive", p["activity_level"])
	assert.Nil(t, p["weight_goal"])

	status, env = do(t, app, "PUT", "/profile", `{"weight_goal":"gainweight","activity_level":2}`)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	require.NotNil(t, gotUpdate.WeightGoal)
	assert.Equal(t, domain.GoalGainWeight, *gotUpdate.WeightGoal)
	require.NotNil(t, gotUpdate.ActivityLevel)
	assert.Equal(t, domain.ActivityLightlyActive, *gotUpdate.ActivityLevel)

	status, _ = do(t, app, "PUT", "/profile", `{"weight_goal":"Bulk"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "PUT", "/profile", `{"target_weight":-3}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, env = do(t, app, "POST", "/profile/calorie-goal", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"daily_calorie_goal":2394}`, string(env.Data))

	status, _ = do(t, app, "GET", "/profile/metabolism", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestProfileHandler_ClearTargetWeight(t *testing.T) {
	var gotUpdate *domain.ProfileUpdate
	h := NewProfileHandler(stubProfiles{
		update: func(userID string, upd domain.ProfileUpdate) (*domain.UserProfile, error) {
			gotUpdate = &upd
			return &domain.UserProfile{UserID: userID, DailyCalorieGoal: 2100}, nil
		},
	})

	app := fiber.New()
	app.Use(asUser("u1"))
	app.Put("/profile", h.UpdateProfile)

	status, env := do(t, app, "PUT", "/profile", `{"target_weight":0}`)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	require.NotNil(t, gotUpdate)
	require.NotNil(t, gotUpdate.TargetWeight)
	assert.Zero(t, *gotUpdate.TargetWeight)

	var p map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.NotContains(t, p, "target_weight")
	assert.Nil(t, p["sex"])
}

func TestProfileHandler_Unauthenticated(t *testing.T) {
	h := NewProfileHandler(stubProfiles{})

	app := fiber.New()
	app.Use(asUser(""))
	app.Get("/profile", h.GetProfile)

	status, env := do(t, app, "GET", "/profile", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "user not authenticated", env.Error)
}

func TestMeasurementHandler(t *testing.T) {
	h := NewMeasurementHandler(stubMeasurements{
		record: func(userID string, in domain.MeasurementInput) (*domain.Measurement, error) {
			return &domain.Measurement{ID: "m1", UserID: userID, Weight: in.Weight, Height: in.Height, Date: fixedNow}, nil
		},
		list: func(string) ([]domain.Measurement, error) {
			return []domain.Measurement{{ID: "m1", Weight: 80}}, nil
		},
	})

	app := fiber.New()
	app.Use(asUser("u1"))
	app.Post("/measurements", h.RecordMeasurement)
	app.Get("/measurements", h.ListMeasurements)

	status, env := do(t, app, "POST", "/measurements", domain.MeasurementInput{Weight: 80, Height: 180})
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	var m domain.Measurement
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, "u1", m.UserID)
	assert.Equal(t, 80.0, m.Weight)

	for _, body := range []string{`{"weight":0,"height":180}`, `{"weight":80}`, `{"weight":900,"height":180}`, `not json`} {
		status, env := do(t, app, "POST", "/measurements", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
		assert.False(t, env.Success)
	}

	status, env = do(t, app, "GET", "/measurements", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list []domain.Measurement
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}

func TestWeightHandler_Trend(t *testing.T) {
	var gotPeriod domain.Period
	h := NewWeightHandler(stubWeight{
		trend: func(_ string, p domain.Period) (*domain.WeightTrend, error) {
			gotPeriod = p
			return &domain.WeightTrend{Period: p, Change: -1, Trend: domain.TrendDecreasing, VelocityKgPerWeek: -1}, nil
		},
	})

	app := fiber.New()
	app.Use(asUser("u1"))
	app.Get("/weight/trend", h.GetTrend)

	status, env := do(t, app, "GET", "/weight/trend", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, domain.PeriodWeek, gotPeriod)
	assert.JSONEq(t, `{"period":"week","change":-1,"trend":"decreasing","velocity":-1}`, string(env.Data))

	status, _ = do(t, app, "GET", "/weight/trend?period=Quarter", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, domain.PeriodQuarter, gotPeriod)

	status, env = do(t, app, "GET", "/weight/trend?period=decade", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Error, "decade")
}

func TestWeightHandler_Views(t *testing.T) {
	h := NewWeightHandler(stubWeight{
		overview: func(string) (*domain.WeightOverview, error) {
			return &domain.WeightOverview{
				Trends:  map[domain.Period]domain.WeightTrend{domain.PeriodMonth: {Period: domain.PeriodMonth, Trend: domain.TrendStable}},
				Message: "Keep tracking your progress!",
			}, nil
		},
		metrics: func(string) (*domain.BodyMetrics, error) {
			return nil, fmt.Errorf("%w: no measurements recorded", domain.ErrNotFound)
		},
	})

	app := fiber.New()
	app.Use(asUser("u1"))
	app.Get("/weight", h.GetData)
	app.Get("/weight/overview", h.GetOverview)
	app.Get("/weight/progress", h.GetProgress)
	app.Get("/weight/chart", h.GetChart)
	app.Get("/weight/stats", h.GetStats)
	app.Get("/weight/body-metrics", h.GetBodyMetrics)

	for _, path := range []string{"/weight", "/weight/progress", "/weight/chart", "/weight/stats"} {
		status, env := do(t, app, "GET", path, nil)
		assert.Equal(t, fiber.StatusOK, status, path)
		assert.True(t, env.Success, path)
	}

	status, env := do(t, app, "GET", "/weight/overview", nil)
	require.Equal(t, fiber.StatusOK, status)
	var overview map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Contains(t, overview["trends"], "month")
	assert.Equal(t, "Keep tracking your progress!", overview["message"])

	status, env = do(t, app, "GET", "/weight/body-metrics", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, env.Error, "no measurements")
}

func TestNutritionHandler(t *testing.T) {
	var (
		gotEntry domain.FoodEntryInput
		gotDay   time.Time
	)
	h := NewNutritionHandler(stubNutrition{
		createFood: func(userID string, food domain.FoodNutritionProfile) (*domain.FoodNutritionProfile, error) {
			food.ID = "f1"
			food.CreatedBy = userID
			return &food, nil
		},
		getFood: func(id string) (*domain.FoodNutritionProfile, error) {
			if id != "f1" {
				return nil, domain.ErrNotFound
			}
			return &domain.FoodNutritionProfile{ID: "f1", Name: "Oats"}, nil
		},
		logFood: func(userID string, in domain.FoodEntryInput) (*domain.FoodConsumptionRecord, error) {
			gotEntry = in
			return &domain.FoodConsumptionRecord{ID: "e1", UserID: userID, FoodID: in.FoodID, Quantity: in.Quantity, MealBucket: *in.Meal}, nil
		},
		remove: func(userID, entryID string) error {
			if entryID == "theirs" {
				return domain.ErrForbidden
			}
			return nil
		},
		daily: func(_ string, day time.Time) (*domain.DailyStats, error) {
			gotDay = day
			stats := engine.CalculateDailyStats(nil, 2000)
			stats.TotalCalories = 2500
			stats.ProgressPercentage = 125
			return &stats, nil
		},
	}, func() time.Time { return fixedNow })

	app := fiber.New()
	app.Use(asUser("u1"))
	app.Post("/foods", h.CreateFood)
	app.Get("/foods/:id", h.GetFood)
	app.Post("/food-entries", h.LogFood)
	app.Delete("/food-entries/:id", h.RemoveEntry)
	app.Get("/nutrition/daily", h.GetDailyStats)

	status, env := do(t, app, "POST", "/foods", `{"name":"Oats","calories_per_100":380,"protein_per_100":13}`)
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	assert.Contains(t, string(env.Data), `"created_by":"u1"`)

	status, _ = do(t, app, "POST", "/foods", `{"calories_per_100":380}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "GET", "/foods/f1", nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, "GET", "/foods/f2", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, env = do(t, app, "POST", "/food-entries", `{"food_id":"f1","quantity":150,"meal":"Dinner"}`)
	require.Equal(t, fiber.StatusCreated, status, env.Error)
	require.NotNil(t, gotEntry.Meal)
	assert.Equal(t, domain.MealDinner, *gotEntry.Meal)
	assert.Contains(t, string(env.Data), `"meal":"Dinner"`)

	status, _ = do(t, app, "POST", "/food-entries", `{"food_id":"f1","quantity":150}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	status, _ = do(t, app, "POST", "/food-entries", `{"food_id":"f1","quantity":150,"meal":"Brunch"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, "DELETE", "/food-entries/mine", nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = do(t, app, "DELETE", "/food-entries/theirs", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = do(t, app, "GET", "/nutrition/daily", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, fixedNow.Equal(gotDay))
	var daily struct {
		Date     string            `json:"date"`
		Exceeded bool              `json:"exceeded"`
		Stats    domain.DailyStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &daily))
	assert.Equal(t, "2026-06-15", daily.Date)
	assert.True(t, daily.Exceeded)
	assert.Len(t, daily.Stats.Meals, 4)

	status, _ = do(t, app, "GET", "/nutrition/daily?date=2026-02-03", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC).Equal(gotDay))

	status, _ = do(t, app, "GET", "/nutrition/daily?date=03/02/2026", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCalculatorHandler_Preview(t *testing.T) {
	h := NewCalculatorHandler(engine.NewWithClock(func() time.Time { return fixedNow }))

	app := fiber.New()
	app.Post("/preview", h.Preview)

	status, env := do(t, app, "POST", "/preview", `{"sex":"male","age":30,"activity_level":"ModeratelyActive","weight_goal":"LoseWeight","weight":80,"height":180}`)
	require.Equal(t, fiber.StatusOK, status, env.Error)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, 30, resp.Metabolic.Age)
	assert.InDelta(t, 1780, resp.Metabolic.BMR, 1e-9)
	assert.Equal(t, 2259, resp.Metabolic.DailyCalorieGoal)
	assert.Equal(t, domain.BMINormal, resp.BodyMetrics.BMICategory)

	status, env = do(t, app, "POST", "/preview", `{"sex":"female","age":30,"activity_level":1,"weight_goal":2,"weight":60,"height":165,"body_fat_percentage":25}`)
	require.Equal(t, fiber.StatusOK, status, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, domain.FFMIAboveAverage, resp.BodyMetrics.FFMICategory)

	for _, body := range []string{
		`{"sex":"other","age":30,"activity_level":1,"weight_goal":2,"weight":60,"height":165}`,
		`{"sex":"male","age":0,"activity_level":1,"weight_goal":2,"weight":60,"height":165}`,
		`{"sex":"male","age":30,"activity_level":1,"weight_goal":2,"weight":60,"height":165,"body_fat_percentage":100}`,
		`{"sex":"male","age":30,"weight_goal":2,"weight":60,"height":165}`,
	} {
		status, _ := do(t, app, "POST", "/preview", body)
		assert.Equal(t, fiber.StatusBadRequest, status, body)
	}
}
