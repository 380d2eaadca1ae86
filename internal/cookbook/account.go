package cookbook

import (
	"context"

	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/logger"
	"philcali.me/mealplanner/internal/nutrition"
)

type Stats struct {
	TotalRecipes       int
	FavoriteCount      int
	TotalMealPlans     int
	TotalShoppingLists int
}

type DietaryCount struct {
	DietaryType data.DietaryType
	Count       int
}

type NutritionSummary struct {
	RecipeCount   int
	Averages      nutrition.Averages
	ByDietaryType []DietaryCount
}

func (s *Service) Stats(ctx context.Context, requester int64) (Stats, error) {
	var stats Stats
	if err := requireUser(requester); err != nil {
		return stats, err
	}
	var err error
	if stats.TotalRecipes, err = s.Recipes.CountByOwner(ctx, requester); err != nil {
		return stats, err
	}
	if stats.FavoriteCount, err = s.Favorites.Count(ctx, requester); err != nil {
		return stats, err
	}
	if stats.TotalMealPlans, err = s.MealPlans.Count(ctx, requester); err != nil {
		return stats, err
	}
	if stats.TotalShoppingLists, err = s.ShoppingLists.Count(ctx, requester); err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *Service) ownRecipes(ctx context.Context, requester int64) ([]data.RecipeDTO, error) {
	return data.Collect(ctx, func(ctx context.Context, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
		return s.Recipes.ListByOwner(ctx, requester, data.RecipeFilter{}, params)
	})
}

// NutritionSummary averages the requester's recipes, rounded to one decimal,
// and counts them per dietary type.
func (s *Service) NutritionSummary(ctx context.Context, requester int64) (NutritionSummary, error) {
	if err := requireUser(requester); err != nil {
		return NutritionSummary{}, err
	}
	recipes, err := s.ownRecipes(ctx, requester)
	if err != nil {
		return NutritionSummary{}, err
	}
	counts := nutrition.CountByDietaryType(recipes)
	summary := NutritionSummary{
		RecipeCount:   len(recipes),
		Averages:      nutrition.Average(recipes).Rounded(),
		ByDietaryType: make([]DietaryCount, 0, len(data.DietaryTypes)),
	}
	for _, dietaryType := range data.DietaryTypes {
		summary.ByDietaryType = append(summary.ByDietaryType, DietaryCount{
			DietaryType: dietaryType,
			Count:       counts[dietaryType],
		})
	}
	return summary, nil
}

// DeleteAccount removes everything the requester owns, dependents first.
func (s *Service) DeleteAccount(ctx context.Context, requester int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	recipes, err := s.ownRecipes(ctx, requester)
	if err != nil {
		return err
	}
	for _, recipe := range recipes {
		if err := s.deleteRecipe(ctx, recipe); err != nil {
			return err
		}
	}
	favorites, err := data.Collect(ctx, func(ctx context.Context, params data.QueryParams) (data.QueryResults[data.FavoriteDTO], error) {
		return s.Favorites.List(ctx, requester, params)
	})
	if err != nil {
		return err
	}
	for _, favorite := range favorites {
		if err := ignoreNotFound(s.Favorites.Remove(ctx, requester, favorite.RecipeId)); err != nil {
			return err
		}
	}
	if err := s.Preferences.Delete(ctx, requester); err != nil {
		return err
	}
	reviews, err := s.Reviews.ListByReviewer(ctx, requester)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		if err := ignoreNotFound(s.Reviews.Delete(ctx, review.RecipeId, requester)); err != nil {
			return err
		}
	}
	plans, err := data.Collect(ctx, func(ctx context.Context, params data.QueryParams) (data.QueryResults[data.MealPlanDTO], error) {
		return s.MealPlans.List(ctx, requester, params)
	})
	if err != nil {
		return err
	}
	for _, plan := range plans {
		if err := s.deleteMealPlan(ctx, plan); err != nil {
			return err
		}
	}
	lists, err := data.Collect(ctx, func(ctx context.Context, params data.QueryParams) (data.QueryResults[data.ShoppingListDTO], error) {
		return s.ShoppingLists.List(ctx, requester, params)
	})
	if err != nil {
		return err
	}
	for _, list := range lists {
		if err := s.deleteShoppingList(ctx, list); err != nil {
			return err
		}
	}
	subscriptions, err := data.Collect(ctx, func(ctx context.Context, params data.QueryParams) (data.QueryResults[data.SubscriptionDTO], error) {
		return s.Subscriptions.List(ctx, requester, params)
	})
	if err != nil {
		return err
	}
	for _, subscription := range subscriptions {
		if err := s.deleteSubscription(ctx, requester, subscription); err != nil {
			return err
		}
	}
	logger.Info("Deleted account",
		zap.Int64("userId", requester),
		zap.Int("mealPlans", len(plans)),
		zap.Int("shoppingLists", len(lists)),
		zap.Int("subscriptions", len(subscriptions)))
	return nil
}
