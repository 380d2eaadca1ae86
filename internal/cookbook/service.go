// Package cookbook holds the operations behind every endpoint. Each one takes
// the requesting user explicitly and applies the visibility and ownership
// rules from the access package before touching storage.
package cookbook

import (
	"errors"

	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/notifications"
)

type Service struct {
	Recipes       data.RecipeRepository
	Favorites     data.FavoriteRepository
	Reviews       data.ReviewRepository
	Preferences   data.DietaryPreferenceRepository
	MealPlans     data.MealPlanRepository
	ShoppingLists data.ShoppingListRepository
	Subscriptions data.SubscriptionRepository
	Notifications notifications.NotificationService
}

func requireUser(requester int64) error {
	if requester == access.ANONYMOUS {
		return exceptions.Unauthorized()
	}
	return nil
}

func isNotFound(err error) bool {
	var nfe *exceptions.NotFoundError
	return errors.As(err, &nfe)
}

func isConflict(err error) bool {
	var ce *exceptions.ConflictError
	return errors.As(err, &ce)
}

// ignoreNotFound treats a row that is already gone as deleted.
func ignoreNotFound(err error) error {
	if isNotFound(err) {
		return nil
	}
	return err
}
