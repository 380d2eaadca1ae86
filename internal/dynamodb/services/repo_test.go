package services_test

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/dynamodb/token"
	"philcali.me/mealplanner/internal/exceptions"
)

func TestScope(t *testing.T) {
	marshaler := token.NewGCMWithSecret([]byte("paging"))
	lastKey := map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: "1:ShoppingList"},
		"SK": &types.AttributeValueMemberS{Value: services.FormatId(3)},
	}

	t.Run("OneListingPerToken", func(t *testing.T) {
		next, err := marshaler.Marshal(services.Scope(1, "ShoppingList"), lastKey)
		if err != nil {
			t.Fatalf("Failed to marshal token: %s", err)
		}
		if _, err := marshaler.Unmarshal(services.Scope(1, "ShoppingList"), next); err != nil {
			t.Fatalf("Expected the token to open for its own listing: %s", err)
		}
		_, err = marshaler.Unmarshal(services.Scope(1, "MealPlan"), next)
		var invalid *exceptions.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("Expected an invalid input error for another listing, got %v", err)
		}
		if _, err := marshaler.Unmarshal(services.Scope(2, "ShoppingList"), next); !errors.As(err, &invalid) {
			t.Fatalf("Expected an invalid input error for another user, got %v", err)
		}
	})

	t.Run("Keys", func(t *testing.T) {
		if key := services.ChildKey("Recipe", 12, "Review"); key != "Recipe:0000000000000012:Review" {
			t.Fatalf("Unexpected child key %s", key)
		}
		if id, err := services.ParseId(services.FormatId(42)); err != nil || id != 42 {
			t.Fatalf("Expected 42 back, got %d %v", id, err)
		}
	})
}
