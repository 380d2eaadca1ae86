package cookbook

import (
	"context"

	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/ratings"
)

type RecipeDetail struct {
	Recipe   data.RecipeDTO
	Reviews  []data.ReviewDTO
	Rating   ratings.Summary
	Favorite bool
}

type SharedRecipe struct {
	Recipe data.RecipeDTO
	Rating ratings.Summary
}

func (s *Service) CreateRecipe(ctx context.Context, requester int64, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.RecipeDTO{}, err
	}
	if err := input.Validate(true); err != nil {
		return data.RecipeDTO{}, err
	}
	if input.DietaryType == nil {
		none := data.DIET_NONE
		input.DietaryType = &none
	}
	return s.Recipes.Create(ctx, requester, input)
}

// visibleRecipe loads a recipe, hiding it behind NotFound when the requester
// may not see it.
func (s *Service) visibleRecipe(ctx context.Context, requester int64, recipeId int64) (data.RecipeDTO, error) {
	recipe, err := s.Recipes.Get(ctx, recipeId)
	if err != nil {
		return recipe, err
	}
	return recipe, access.CheckVisible(recipe, requester)
}

func (s *Service) ownedRecipe(ctx context.Context, requester int64, recipeId int64) (data.RecipeDTO, error) {
	recipe, err := s.Recipes.Get(ctx, recipeId)
	if err != nil {
		return recipe, err
	}
	return recipe, access.CheckOwner("recipe", recipeId, recipe.Owner, requester)
}

func (s *Service) GetRecipe(ctx context.Context, requester int64, recipeId int64) (RecipeDetail, error) {
	recipe, err := s.visibleRecipe(ctx, requester, recipeId)
	if err != nil {
		return RecipeDetail{}, err
	}
	reviews, err := s.Reviews.ListByRecipe(ctx, recipeId)
	if err != nil {
		return RecipeDetail{}, err
	}
	detail := RecipeDetail{
		Recipe:  recipe,
		Reviews: reviews,
		Rating:  ratings.Summarize(reviews),
	}
	if requester != access.ANONYMOUS {
		detail.Favorite, err = s.Favorites.Exists(ctx, requester, recipeId)
		if err != nil {
			return RecipeDetail{}, err
		}
	}
	return detail, nil
}

func (s *Service) ListRecipes(ctx context.Context, requester int64, filter data.RecipeFilter, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	if err := requireUser(requester); err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	return s.Recipes.ListByOwner(ctx, requester, filter, params)
}

func (s *Service) ListSharedRecipes(ctx context.Context, filter data.RecipeFilter, params data.QueryParams) (data.QueryResults[SharedRecipe], error) {
	page, err := s.Recipes.ListShared(ctx, filter, params)
	if err != nil {
		return data.QueryResults[SharedRecipe]{}, err
	}
	items := make([]SharedRecipe, 0, len(page.Items))
	for _, recipe := range page.Items {
		reviews, err := s.Reviews.ListByRecipe(ctx, recipe.Id)
		if err != nil {
			return data.QueryResults[SharedRecipe]{}, err
		}
		items = append(items, SharedRecipe{
			Recipe: recipe,
			Rating: ratings.Summarize(reviews),
		})
	}
	return data.QueryResults[SharedRecipe]{
		Items:     items,
		NextToken: page.NextToken,
	}, nil
}

// UpdateRecipe applies a partial update; omitted fields keep their values.
func (s *Service) UpdateRecipe(ctx context.Context, requester int64, recipeId int64, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.RecipeDTO{}, err
	}
	existing, err := s.ownedRecipe(ctx, requester, recipeId)
	if err != nil {
		return existing, err
	}
	if err := input.Validate(false); err != nil {
		return existing, err
	}
	return s.Recipes.Update(ctx, requester, recipeId, input.Merge(existing))
}

func (s *Service) DeleteRecipe(ctx context.Context, requester int64, recipeId int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	recipe, err := s.ownedRecipe(ctx, requester, recipeId)
	if err != nil {
		return err
	}
	return s.deleteRecipe(ctx, recipe)
}

// deleteRecipe removes the favorites, reviews and meal plan slots that point
// at a recipe before the recipe itself.
func (s *Service) deleteRecipe(ctx context.Context, recipe data.RecipeDTO) error {
	favorites, err := s.Favorites.ListByRecipe(ctx, recipe.Id)
	if err != nil {
		return err
	}
	for _, favorite := range favorites {
		if err := ignoreNotFound(s.Favorites.Remove(ctx, favorite.UserId, recipe.Id)); err != nil {
			return err
		}
	}
	reviews, err := s.Reviews.ListByRecipe(ctx, recipe.Id)
	if err != nil {
		return err
	}
	for _, review := range reviews {
		if err := ignoreNotFound(s.Reviews.Delete(ctx, recipe.Id, review.Reviewer)); err != nil {
			return err
		}
	}
	items, err := s.MealPlans.ListItemsByRecipe(ctx, recipe.Id)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.MealPlans.DeleteItem(ctx, item); err != nil {
			return err
		}
	}
	return ignoreNotFound(s.Recipes.Delete(ctx, recipe.Owner, recipe.Id))
}
