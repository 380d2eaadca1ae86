package cookbook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
)

func TestGenerateShoppingList(t *testing.T) {
	ctx := context.TODO()

	t.Run("DistinctSortedIngredients", func(t *testing.T) {
		f := newFixture()
		first := createRecipe(t, f, OWNER, "Salsa", "Tomato\nOnion\n", false)
		second := createRecipe(t, f, OWNER, "Soup", "Onion\nGarlic", false)
		plan := createPlan(t, f, OWNER, "Week")
		f.service.AddMealPlanItem(ctx, OWNER, plan.Id, schedule(first.Id, "2024-01-01", data.MEAL_LUNCH))
		f.service.AddMealPlanItem(ctx, OWNER, plan.Id, schedule(second.Id, "2024-01-01", data.MEAL_DINNER))

		generated, err := f.service.GenerateShoppingList(ctx, OWNER, plan.Id)
		if err != nil {
			t.Fatalf("Failed to generate list: %v", err)
		}
		if generated.List.Name != "Shopping List for Week" {
			t.Fatalf("Unexpected list name %s", generated.List.Name)
		}
		if generated.List.MealPlanId == nil || *generated.List.MealPlanId != plan.Id {
			t.Fatalf("Expected the list to link back to the plan")
		}
		expected := []string{"Garlic", "Onion", "Tomato"}
		if len(generated.Items) != len(expected) {
			t.Fatalf("Expected %d items, got %v", len(expected), generated.Items)
		}
		for i, item := range generated.Items {
			if item.Name != expected[i] || item.Quantity != "1" {
				t.Fatalf("Expected %s x1 at %d, got %v", expected[i], i, item)
			}
		}
	})

	t.Run("NotIdempotent", func(t *testing.T) {
		f := newFixture()
		plan := createPlan(t, f, OWNER, "Week")
		one, _ := f.service.GenerateShoppingList(ctx, OWNER, plan.Id)
		two, _ := f.service.GenerateShoppingList(ctx, OWNER, plan.Id)
		if one.List.Id == two.List.Id {
			t.Fatalf("Expected two independent lists")
		}
		if len(one.Items) != 0 {
			t.Fatalf("Expected an empty plan to produce no items")
		}
	})

	t.Run("ForeignPlanIsNotFound", func(t *testing.T) {
		f := newFixture()
		plan := createPlan(t, f, OWNER, "Week")
		_, err := f.service.GenerateShoppingList(ctx, STRANGER, plan.Id)
		assertNotFound(t, err)
	})

	t.Run("ReportsFailedItems", func(t *testing.T) {
		f := newFixture()
		f.shoppingLists.failAfter = 1
		recipe := createRecipe(t, f, OWNER, "Salsa", "Tomato\nOnion", false)
		plan := createPlan(t, f, OWNER, "Week")
		f.service.AddMealPlanItem(ctx, OWNER, plan.Id, schedule(recipe.Id, "2024-01-01", data.MEAL_LUNCH))
		generated, err := f.service.GenerateShoppingList(ctx, OWNER, plan.Id)
		var pwe *exceptions.PartialWriteError
		if !errors.As(err, &pwe) {
			t.Fatalf("Expected PartialWriteError, got %v", err)
		}
		if len(pwe.Failed) != 1 || pwe.Failed[0] != "Tomato" || len(generated.Items) != 1 {
			t.Fatalf("Expected Tomato to be reported, got %v", pwe.Failed)
		}
	})
}

func TestShoppingListItems(t *testing.T) {
	ctx := context.TODO()
	f := newFixture()
	list, err := f.service.CreateShoppingList(ctx, OWNER, data.ShoppingListInputDTO{Name: aws.String("Groceries")})
	if err != nil {
		t.Fatalf("Failed to create list: %v", err)
	}

	t.Run("ValidatesItems", func(t *testing.T) {
		_, err := f.service.AddShoppingListItem(ctx, OWNER, list.Id, data.ShoppingListItemInputDTO{Name: aws.String(""), Quantity: aws.String("1")})
		assertValidation(t, err, "item_name")
	})

	t.Run("DuplicateNamesAllowed", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if _, err := f.service.AddShoppingListItem(ctx, OWNER, list.Id, data.ShoppingListItemInputDTO{Name: aws.String("Milk"), Quantity: aws.String("2")}); err != nil {
				t.Fatalf("Failed to add item: %v", err)
			}
		}
		detail, _ := f.service.GetShoppingList(ctx, OWNER, list.Id)
		if len(detail.Items) != 2 {
			t.Fatalf("Expected 2 items, got %v", detail.Items)
		}
	})

	t.Run("ToggleFlips", func(t *testing.T) {
		detail, _ := f.service.GetShoppingList(ctx, OWNER, list.Id)
		item := detail.Items[0]
		toggled, err := f.service.ToggleShoppingListItem(ctx, OWNER, item.Id)
		if err != nil || !toggled.Checked {
			t.Fatalf("Expected item to be checked, got %v %v", toggled, err)
		}
		toggled, err = f.service.ToggleShoppingListItem(ctx, OWNER, item.Id)
		if err != nil || toggled.Checked {
			t.Fatalf("Expected item to be unchecked, got %v %v", toggled, err)
		}
	})

	t.Run("StrangerCannotTouch", func(t *testing.T) {
		detail, _ := f.service.GetShoppingList(ctx, OWNER, list.Id)
		_, err := f.service.ToggleShoppingListItem(ctx, STRANGER, detail.Items[0].Id)
		assertNotFound(t, err)
		assertNotFound(t, f.service.DeleteShoppingListItem(ctx, STRANGER, detail.Items[0].Id))
		_, err = f.service.AddShoppingListItem(ctx, STRANGER, list.Id, data.ShoppingListItemInputDTO{Name: aws.String("Eggs"), Quantity: aws.String("12")})
		assertNotFound(t, err)
	})

	t.Run("RenameKeepsLink", func(t *testing.T) {
		renamed, err := f.service.RenameShoppingList(ctx, OWNER, list.Id, data.ShoppingListInputDTO{Name: aws.String("Weekend")})
		if err != nil || renamed.Name != "Weekend" {
			t.Fatalf("Failed to rename list: %v %v", renamed, err)
		}
	})

	t.Run("DeleteCascades", func(t *testing.T) {
		if err := f.service.DeleteShoppingList(ctx, OWNER, list.Id); err != nil {
			t.Fatalf("Failed to delete list: %v", err)
		}
		if len(f.shoppingLists.items) != 0 {
			t.Fatalf("Expected items to be removed, got %v", f.shoppingLists.items)
		}
	})
}
