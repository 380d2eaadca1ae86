package cookbook

import (
	"context"

	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/data"
)

// ToggleFavorite flips the favorite state of a visible recipe and reports the
// new state. A concurrent toggle that already created the row sends this one
// down the removal branch.
func (s *Service) ToggleFavorite(ctx context.Context, requester int64, recipeId int64) (bool, error) {
	if err := requireUser(requester); err != nil {
		return false, err
	}
	if _, err := s.visibleRecipe(ctx, requester, recipeId); err != nil {
		return false, err
	}
	_, err := s.Favorites.Add(ctx, requester, recipeId)
	if err == nil {
		return true, nil
	}
	if !isConflict(err) {
		return false, err
	}
	if err := s.Favorites.Remove(ctx, requester, recipeId); err != nil && !isNotFound(err) {
		return false, err
	}
	return false, nil
}

// ListFavorites pages through the requester's favorites, dropping recipes
// that are gone or no longer visible and those outside dietaryType.
func (s *Service) ListFavorites(ctx context.Context, requester int64, dietaryType *data.DietaryType, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	if err := requireUser(requester); err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	page, err := s.Favorites.List(ctx, requester, params)
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	ids := make([]int64, 0, len(page.Items))
	for _, favorite := range page.Items {
		ids = append(ids, favorite.RecipeId)
	}
	recipes, err := s.Recipes.GetMany(ctx, ids)
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	items := make([]data.RecipeDTO, 0, len(ids))
	for _, recipeId := range ids {
		recipe, ok := recipes[recipeId]
		if !ok || !access.Visible(recipe, requester) {
			continue
		}
		if dietaryType != nil && recipe.DietaryType != *dietaryType {
			continue
		}
		items = append(items, recipe)
	}
	return data.QueryResults[data.RecipeDTO]{
		Items:     items,
		NextToken: page.NextToken,
	}, nil
}
