package nutrition_test

import (
	"testing"

	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/nutrition"
)

func TestSum(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		if totals := nutrition.Sum(nil); totals != (nutrition.Totals{}) {
			t.Fatalf("Expected zero totals, got %v", totals)
		}
	})

	t.Run("RepeatedRecipesCountTwice", func(t *testing.T) {
		soup := data.RecipeDTO{Calories: 200, Protein: 10, Fat: 5.5, Carbs: 20}
		bread := data.RecipeDTO{Calories: 100, Protein: 3, Fat: 1, Carbs: 18.5}
		totals := nutrition.Sum([]data.RecipeDTO{soup, bread, soup})
		expected := nutrition.Totals{Calories: 500, Protein: 23, Fat: 12, Carbs: 58.5}
		if totals != expected {
			t.Fatalf("Expected %v, got %v", expected, totals)
		}
	})
}

func TestAverage(t *testing.T) {
	t.Run("EmptyIsZero", func(t *testing.T) {
		if averages := nutrition.Average([]data.RecipeDTO{}); averages != (nutrition.Averages{}) {
			t.Fatalf("Expected zero averages, got %v", averages)
		}
	})

	t.Run("Rounded", func(t *testing.T) {
		averages := nutrition.Average([]data.RecipeDTO{
			{Calories: 100, Protein: 1, Fat: 1, Carbs: 1},
			{Calories: 101, Protein: 2, Fat: 1, Carbs: 1},
			{Calories: 101, Protein: 2, Fat: 2, Carbs: 1},
		}).Rounded()
		expected := nutrition.Averages{Calories: 100.7, Protein: 1.7, Fat: 1.3, Carbs: 1}
		if averages != expected {
			t.Fatalf("Expected %v, got %v", expected, averages)
		}
	})
}

func TestCountByDietaryType(t *testing.T) {
	counts := nutrition.CountByDietaryType([]data.RecipeDTO{
		{DietaryType: data.DIET_VEGAN},
		{DietaryType: data.DIET_VEGAN},
		{DietaryType: data.DIET_NONE},
	})
	if len(counts) != len(data.DietaryTypes) {
		t.Fatalf("Expected every dietary type, got %v", counts)
	}
	if counts[data.DIET_VEGAN] != 2 || counts[data.DIET_NONE] != 1 || counts[data.DIET_GLUTEN_FREE] != 0 {
		t.Fatalf("Unexpected counts %v", counts)
	}
}
