package cookbook_test

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/notifications"
)

func TestStats(t *testing.T) {
	ctx := context.TODO()
	f := newFixture()
	createRecipe(t, f, OWNER, "One", "Salt", false)
	shared := createRecipe(t, f, STRANGER, "Two", "Salt", true)
	createPlan(t, f, OWNER, "Week")
	f.service.ToggleFavorite(ctx, OWNER, shared.Id)
	f.service.CreateShoppingList(ctx, OWNER, data.ShoppingListInputDTO{Name: aws.String("Groceries")})

	stats, err := f.service.Stats(ctx, OWNER)
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.TotalRecipes != 1 || stats.FavoriteCount != 1 || stats.TotalMealPlans != 1 || stats.TotalShoppingLists != 1 {
		t.Fatalf("Unexpected stats %v", stats)
	}
}

func TestNutritionSummary(t *testing.T) {
	ctx := context.TODO()
	f := newFixture()

	t.Run("EmptyIsZero", func(t *testing.T) {
		summary, err := f.service.NutritionSummary(ctx, OWNER)
		if err != nil {
			t.Fatalf("Failed to summarize: %v", err)
		}
		if summary.RecipeCount != 0 || summary.Averages.Calories != 0 {
			t.Fatalf("Expected zero summary, got %v", summary)
		}
		if len(summary.ByDietaryType) != len(data.DietaryTypes) {
			t.Fatalf("Expected every dietary type, got %v", summary.ByDietaryType)
		}
	})

	t.Run("AveragesRounded", func(t *testing.T) {
		createRecipe(t, f, OWNER, "One", "Salt", false)
		input := recipeInput("Two", "Salt", false)
		input.Calories = aws.Int(101)
		input.Protein = aws.Float64(10.5)
		vegan := data.DIET_VEGAN
		input.DietaryType = &vegan
		f.service.CreateRecipe(ctx, OWNER, input)
		summary, err := f.service.NutritionSummary(ctx, OWNER)
		if err != nil {
			t.Fatalf("Failed to summarize: %v", err)
		}
		if summary.Averages.Calories != 250.5 || summary.Averages.Protein != 15.3 {
			t.Fatalf("Unexpected averages %v", summary.Averages)
		}
		for _, count := range summary.ByDietaryType {
			expected := 0
			if count.DietaryType == data.DIET_NONE || count.DietaryType == data.DIET_VEGAN {
				expected = 1
			}
			if count.Count != expected {
				t.Fatalf("Expected %d for %s, got %d", expected, count.DietaryType, count.Count)
			}
		}
	})
}

func TestSubscriptions(t *testing.T) {
	ctx := context.TODO()
	f := newFixture()

	_, err := f.service.Subscribe(ctx, OWNER, data.SubscriptionInputDTO{Endpoint: aws.String("not-an-email")})
	assertValidation(t, err, "endpoint")

	subscription, err := f.service.Subscribe(ctx, OWNER, data.SubscriptionInputDTO{Endpoint: aws.String("owner@example.com")})
	if err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}
	input := f.notifications.subscribed[subscription.SubscriberArn]
	if input.UserId != OWNER || input.Protocol != notifications.PROTOCOL_EMAIL {
		t.Fatalf("Unexpected subscription input %v", input)
	}
	assertNotFound(t, f.service.Unsubscribe(ctx, STRANGER, subscription.Id))
	if err := f.service.Unsubscribe(ctx, OWNER, subscription.Id); err != nil {
		t.Fatalf("Failed to unsubscribe: %v", err)
	}
	if len(f.notifications.unsubscribed) != 1 {
		t.Fatalf("Expected the endpoint to be unsubscribed")
	}
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.TODO()
	f := newFixture()
	mine := createRecipe(t, f, OWNER, "Mine", "Salt", true)
	theirs := createRecipe(t, f, STRANGER, "Theirs", "Pepper", true)
	plan := createPlan(t, f, OWNER, "Week")
	f.service.AddMealPlanItem(ctx, OWNER, plan.Id, schedule(mine.Id, "2024-01-01", data.MEAL_LUNCH))
	f.service.GenerateShoppingList(ctx, OWNER, plan.Id)
	f.service.ToggleFavorite(ctx, OWNER, theirs.Id)
	f.service.ToggleFavorite(ctx, STRANGER, mine.Id)
	f.service.SubmitReview(ctx, OWNER, "owner", theirs.Id, data.ReviewInputDTO{Rating: aws.Int(5)})
	f.service.SubmitReview(ctx, STRANGER, "stranger", mine.Id, data.ReviewInputDTO{Rating: aws.Int(1)})
	f.service.UpdatePreferences(ctx, OWNER, data.DietaryPreferenceInputDTO{Vegan: aws.Bool(true)})
	f.service.Subscribe(ctx, OWNER, data.SubscriptionInputDTO{Endpoint: aws.String("owner@example.com")})

	if err := f.service.DeleteAccount(ctx, OWNER); err != nil {
		t.Fatalf("Failed to delete account: %v", err)
	}
	if len(f.recipes.rows) != 1 || f.recipes.rows[theirs.Id].Id != theirs.Id {
		t.Fatalf("Expected only the stranger's recipe to remain, got %v", f.recipes.rows)
	}
	if len(f.favorites.rows) != 0 || len(f.reviews.rows) != 0 {
		t.Fatalf("Expected favorites and reviews to be gone: %v %v", f.favorites.rows, f.reviews.rows)
	}
	if _, ok := f.preferences.rows[OWNER]; ok {
		t.Fatalf("Expected preferences to be gone")
	}
	if len(f.mealPlans.plans.rows) != 0 || len(f.shoppingLists.lists.rows) != 0 || len(f.shoppingLists.items) != 0 {
		t.Fatalf("Expected plans and lists to be gone")
	}
	if len(f.subscriptions.rows.rows) != 0 || len(f.notifications.unsubscribed) != 1 {
		t.Fatalf("Expected the subscription to be removed")
	}
}
