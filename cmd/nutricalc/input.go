package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
	"gopkg.in/yaml.v3"
)

// measurementsFile is the YAML layout read by trend, progress and stats:
//
//	measurements:
//	  - date: 2026-06-01
//	    weight: 82.5
//	    height: 180
type measurementsFile struct {
	Measurements []struct {
		Date   string  `yaml:"date"`
		Weight float64 `yaml:"weight"`
		Height float64 `yaml:"height"`
	} `yaml:"measurements"`
}

// foodsFile is the YAML layout read by daily. Nutrition is per 100 g.
type foodsFile struct {
	Goal    int `yaml:"goal"`
	Entries []struct {
		Name           string  `yaml:"name"`
		Meal           string  `yaml:"meal"`
		Quantity       float64 `yaml:"quantity"`
		CaloriesPer100 float64 `yaml:"calories_per_100"`
		ProteinPer100  float64 `yaml:"protein_per_100"`
		CarbsPer100    float64 `yaml:"carbs_per_100"`
		FatPer100      float64 `yaml:"fat_per_100"`
	} `yaml:"entries"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", s)
}

func readYAML(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadMeasurements(path string) ([]domain.Measurement, error) {
	var f measurementsFile
	if err := readYAML(path, &f); err != nil {
		return nil, err
	}

	ms := make([]domain.Measurement, 0, len(f.Measurements))
	for i, row := range f.Measurements {
		date, err := parseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("measurement %d: %w", i+1, err)
		}
		ms = append(ms, domain.Measurement{
			ID:     fmt.Sprintf("m%d", i+1),
			Date:   date,
			Weight: row.Weight,
			Height: row.Height,
		})
	}
	return ms, nil
}

func loadFoods(path string) ([]domain.ConsumedFood, int, error) {
	var f foodsFile
	if err := readYAML(path, &f); err != nil {
		return nil, 0, err
	}

	consumed := make([]domain.ConsumedFood, 0, len(f.Entries))
	for i, row := range f.Entries {
		meal, err := domain.ParseMealBucket(row.Meal)
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if row.Quantity <= 0 {
			return nil, 0, fmt.Errorf("entry %d: quantity must be positive", i+1)
		}
		id := fmt.Sprintf("f%d", i+1)
		consumed = append(consumed, domain.ConsumedFood{
			Record: domain.FoodConsumptionRecord{ID: fmt.Sprintf("e%d", i+1), FoodID: id, Quantity: row.Quantity, MealBucket: meal},
			Food: domain.FoodNutritionProfile{
				ID:             id,
				Name:           row.Name,
				CaloriesPer100: row.CaloriesPer100,
				ProteinPer100:  row.ProteinPer100,
				CarbsPer100:    row.CarbsPer100,
				FatPer100:      row.FatPer100,
			},
		})
	}
	return consumed, f.Goal, nil
}
