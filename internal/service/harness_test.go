package service

import (
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

type harness struct {
	profiles     *fakeProfiles
	measurements *fakeMeasurements
	foods        *fakeFoods
	entries      *fakeEntries
	cache        *fakeCache

	profileSvc     *ProfileService
	measurementSvc *MeasurementService
	weightSvc      *WeightService
	nutritionSvc   *NutritionService
}

func newHarness(foods ...domain.FoodNutritionProfile) *harness {
	h := &harness{
		profiles:     newFakeProfiles(),
		measurements: &fakeMeasurements{},
		foods:        newFakeFoods(foods...),
		entries:      newFakeEntries(),
		cache:        newFakeCache(),
	}
	eng := fixedEngine()

	h.profileSvc = NewProfileService(h.profiles, h.measurements, h.cache, eng, nil, testLog)
	h.measurementSvc = NewMeasurementService(h.measurements, h.profiles, h.profileSvc, h.cache, eng, nil, testLog)
	h.weightSvc = NewWeightService(h.measurements, h.profiles, h.cache, eng, time.Minute, nil, testLog)
	h.nutritionSvc = NewNutritionService(h.foods, h.entries, h.profiles, h.cache, eng, time.Minute, nil, testLog)
	return h
}

func ptr[T any](v T) *T {
	return &v
}

// thirtyYearOldMale is 30 on fixedNow
func thirtyYearOldMale() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Sex:           ptr(domain.SexMale),
		DateOfBirth:   ptr(time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC)),
		ActivityLevel: ptr(domain.ActivityModeratelyActive),
		WeightGoal:    ptr(domain.GoalLoseWeight),
		TargetWeight:  ptr(75.0),
	}
}

func daysAgo(n int) *time.Time {
	return ptr(fixedNow.AddDate(0, 0, -n))
}
