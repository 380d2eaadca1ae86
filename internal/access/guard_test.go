package access_test

import (
	"errors"
	"testing"

	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
)

func TestVisible(t *testing.T) {
	owner := int64(7)
	other := int64(8)
	for _, shared := range []bool{true, false} {
		recipe := data.RecipeDTO{Id: 1, Owner: owner, Shared: shared}
		for _, requester := range []int64{owner, other, access.ANONYMOUS} {
			expected := shared || requester == owner
			if access.Visible(recipe, requester) != expected {
				t.Errorf("Visible(shared=%v, requester=%d) expected %v", shared, requester, expected)
			}
		}
	}
}

func TestCheckVisible(t *testing.T) {
	private := data.RecipeDTO{Id: 3, Owner: 1}
	err := access.CheckVisible(private, 2)
	var notFound *exceptions.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Expected a NotFoundError, got %v", err)
	}
	if notFound.Error() != exceptions.NotFound("recipe", "3").Error() {
		t.Fatalf("Hidden recipe should look missing: %s", notFound.Error())
	}
	if err := access.CheckVisible(private, 1); err != nil {
		t.Fatalf("Owner should see the recipe: %v", err)
	}
}

func TestCheckOwner(t *testing.T) {
	if err := access.CheckOwner("meal plan", 5, 1, 1); err != nil {
		t.Fatalf("Expected owner to pass, got %v", err)
	}
	if err := access.CheckOwner("meal plan", 5, 1, 2); err == nil {
		t.Fatal("Expected a non owner to fail")
	}
	if err := access.CheckOwner("meal plan", 5, access.ANONYMOUS, access.ANONYMOUS); err == nil {
		t.Fatal("Anonymous callers never own rows")
	}
}
