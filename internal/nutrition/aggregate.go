package nutrition

import (
	"math"

	"philcali.me/mealplanner/internal/data"
)

type Totals struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

type Averages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Sum adds up every recipe; a recipe listed twice counts twice.
func Sum(recipes []data.RecipeDTO) Totals {
	var totals Totals
	for _, recipe := range recipes {
		totals.Calories += recipe.Calories
		totals.Protein += recipe.Protein
		totals.Fat += recipe.Fat
		totals.Carbs += recipe.Carbs
	}
	return totals
}

// Average is zero for an empty collection.
func Average(recipes []data.RecipeDTO) Averages {
	if len(recipes) == 0 {
		return Averages{}
	}
	totals := Sum(recipes)
	n := float64(len(recipes))
	return Averages{
		Calories: float64(totals.Calories) / n,
		Protein:  totals.Protein / n,
		Fat:      totals.Fat / n,
		Carbs:    totals.Carbs / n,
	}
}

// Rounded rounds every average to one decimal place.
func (a Averages) Rounded() Averages {
	round := func(v float64) float64 {
		return math.Round(v*10) / 10
	}
	return Averages{
		Calories: round(a.Calories),
		Protein:  round(a.Protein),
		Fat:      round(a.Fat),
		Carbs:    round(a.Carbs),
	}
}

// CountByDietaryType reports every known dietary type, including empty ones.
func CountByDietaryType(recipes []data.RecipeDTO) map[data.DietaryType]int {
	counts := make(map[data.DietaryType]int, len(data.DietaryTypes))
	for _, dietaryType := range data.DietaryTypes {
		counts[dietaryType] = 0
	}
	for _, recipe := range recipes {
		counts[recipe.DietaryType]++
	}
	return counts
}
