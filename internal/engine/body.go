package engine

import (
	"fmt"

	"github.com/mansoorceksport/nutrimetrics/internal/domain"
)

// DefaultBodyFatPercentage is assumed when no body-fat reading is available
const DefaultBodyFatPercentage = 15.0

// bmiBands are upper bounds (exclusive) in ascending order; anything at or
// above the last bound is Obese Class III.
var bmiBands = []struct {
	upper    float64
	category domain.BMICategory
}{
	{18.5, domain.BMIUnderweight},
	{25, domain.BMINormal},
	{30, domain.BMIOverweight},
	{35, domain.BMIObeseClassI},
	{40, domain.BMIObeseClassII},
}

// ffmiThresholds differ by sex; each boundary starts the next category
var ffmiThresholds = map[domain.Sex][4]float64{
	domain.SexMale:   {16, 18, 20, 22},
	domain.SexFemale: {14, 16, 17, 19},
}

var ffmiCategories = [5]domain.FFMICategory{
	domain.FFMIBelowAverage,
	domain.FFMIAverage,
	domain.FFMIAboveAverage,
	domain.FFMIExcellent,
	domain.FFMISuperior,
}

func heightSquared(heightCM float64) float64 {
	m := heightCM / 100
	return m * m
}

// CalculateBMI returns weight (kg) over height (m) squared
func CalculateBMI(weight, height float64) float64 {
	return weight / heightSquared(height)
}

// BMICategoryFor classifies a BMI value
func BMICategoryFor(bmi float64) domain.BMICategory {
	for _, band := range bmiBands {
		if bmi < band.upper {
			return band.category
		}
	}
	return domain.BMIObeseClassIII
}

// CalculateFFMI returns the fat-free mass index for the given body-fat percentage
func CalculateFFMI(weight, height, bodyFatPercentage float64) float64 {
	fatFree := weight * (1 - bodyFatPercentage/100)
	return fatFree / heightSquared(height)
}

// FFMICategoryFor classifies an FFMI value. Anything other than Male uses
// the female thresholds.
func FFMICategoryFor(ffmi float64, sex domain.Sex) domain.FFMICategory {
	thresholds, ok := ffmiThresholds[sex]
	if !ok {
		thresholds = ffmiThresholds[domain.SexFemale]
	}
	for i, boundary := range thresholds {
		if ffmi < boundary {
			return ffmiCategories[i]
		}
	}
	return domain.FFMISuperior
}

// CalculateBodyMetrics computes BMI and FFMI assuming DefaultBodyFatPercentage
func CalculateBodyMetrics(weight, height float64, sex domain.Sex) (domain.BodyMetrics, error) {
	return CalculateBodyMetricsWithBodyFat(weight, height, sex, DefaultBodyFatPercentage)
}

// CalculateBodyMetricsWithBodyFat computes BMI and FFMI for a known body-fat percentage
func CalculateBodyMetricsWithBodyFat(weight, height float64, sex domain.Sex, bodyFatPercentage float64) (domain.BodyMetrics, error) {
	if err := ValidateMeasurement(weight, height); err != nil {
		return domain.BodyMetrics{}, err
	}
	if bodyFatPercentage < 0 || bodyFatPercentage >= 100 {
		return domain.BodyMetrics{}, fmt.Errorf("%w: body fat percentage must be in [0, 100), got %.2f",
			domain.ErrInvalidMeasurement, bodyFatPercentage)
	}

	bmi := CalculateBMI(weight, height)
	ffmi := CalculateFFMI(weight, height, bodyFatPercentage)

	return domain.BodyMetrics{
		Weight:       weight,
		Height:       height,
		BMI:          bmi,
		BMICategory:  BMICategoryFor(bmi),
		FFMI:         ffmi,
		FFMICategory: FFMICategoryFor(ffmi, sex),
	}, nil
}
