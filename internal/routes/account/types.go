package account

import (
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/nutrition"
)

type Stats struct {
	TotalRecipes       int `json:"total_recipes"`
	FavoriteCount      int `json:"favorite_count"`
	TotalMealPlans     int `json:"total_meal_plans"`
	TotalShoppingLists int `json:"total_shopping_lists"`
}

func NewStats(stats cookbook.Stats) Stats {
	return Stats{
		TotalRecipes:       stats.TotalRecipes,
		FavoriteCount:      stats.FavoriteCount,
		TotalMealPlans:     stats.TotalMealPlans,
		TotalShoppingLists: stats.TotalShoppingLists,
	}
}

type DietaryCount struct {
	DietaryType string `json:"dietary_type"`
	Label       string `json:"label"`
	Count       int    `json:"count"`
}

type NutritionSummary struct {
	RecipeCount   int                `json:"recipe_count"`
	Averages      nutrition.Averages `json:"averages"`
	ByDietaryType []DietaryCount     `json:"by_dietary_type"`
}

func NewNutritionSummary(summary cookbook.NutritionSummary) NutritionSummary {
	counts := make([]DietaryCount, len(summary.ByDietaryType))
	for i, count := range summary.ByDietaryType {
		counts[i] = DietaryCount{
			DietaryType: string(count.DietaryType),
			Label:       count.DietaryType.Label(),
			Count:       count.Count,
		}
	}
	return NutritionSummary{
		RecipeCount:   summary.RecipeCount,
		Averages:      summary.Averages,
		ByDietaryType: counts,
	}
}
