package engine

import "github.com/mansoorceksport/nutrimetrics/internal/domain"

// ScaleNutrition converts a food's per-100 g values to the consumed quantity (g)
func ScaleNutrition(food domain.FoodNutritionProfile, quantity float64) domain.NutritionTotals {
	factor := quantity / 100
	return domain.NutritionTotals{
		Calories:      food.CaloriesPer100 * factor,
		Proteins:      food.ProteinPer100 * factor,
		Carbohydrates: food.CarbsPer100 * factor,
		Fats:          food.FatPer100 * factor,
	}
}

// CalculateDailyStats sums a day's consumption per meal and overall and
// compares it with the calorie goal. The progress percentage is returned
// as-is, including values above 100.
func CalculateDailyStats(consumed []domain.ConsumedFood, calorieGoal int) domain.DailyStats {
	meals := make([]domain.MealSummary, len(domain.MealBuckets))
	index := make(map[domain.MealBucket]int, len(domain.MealBuckets))
	for i, bucket := range domain.MealBuckets {
		meals[i] = domain.MealSummary{Meal: bucket, Items: []domain.ConsumedItem{}}
		index[bucket] = i
	}

	var total domain.NutritionTotals
	for _, c := range consumed {
		scaled := ScaleNutrition(c.Food, c.Record.Quantity)
		total = total.Add(scaled)

		i, ok := index[c.Record.MealBucket]
		if !ok {
			i = index[domain.MealSnack]
		}
		meals[i].Totals = meals[i].Totals.Add(scaled)
		meals[i].Items = append(meals[i].Items, domain.ConsumedItem{
			EntryID:  c.Record.ID,
			FoodID:   c.Record.FoodID,
			Name:     c.Food.Name,
			Quantity: c.Record.Quantity,
			Totals:   scaled,
		})
	}

	stats := domain.DailyStats{
		TotalCalories:      total.Calories,
		TotalProteins:      total.Proteins,
		TotalCarbohydrates: total.Carbohydrates,
		TotalFats:          total.Fats,
		CalorieGoal:        calorieGoal,
		RemainingCalories:  float64(calorieGoal) - total.Calories,
		Meals:              meals,
	}
	if calorieGoal > 0 {
		stats.ProgressPercentage = total.Calories / float64(calorieGoal) * 100
	}
	return stats
}
