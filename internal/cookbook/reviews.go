package cookbook

import (
	"context"

	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/ratings"
)

// SubmitReview creates or replaces the requester's review of a visible
// recipe and returns the recipe's refreshed rating.
func (s *Service) SubmitReview(ctx context.Context, requester int64, reviewerName string, recipeId int64, input data.ReviewInputDTO) (data.ReviewDTO, ratings.Summary, error) {
	if err := requireUser(requester); err != nil {
		return data.ReviewDTO{}, ratings.Summary{}, err
	}
	recipe, err := s.visibleRecipe(ctx, requester, recipeId)
	if err != nil {
		return data.ReviewDTO{}, ratings.Summary{}, err
	}
	if err := input.Validate(); err != nil {
		return data.ReviewDTO{}, ratings.Summary{}, err
	}
	input.ReviewerName = reviewerName
	review, err := s.Reviews.Upsert(ctx, recipe, requester, input)
	if err != nil {
		return review, ratings.Summary{}, err
	}
	summary, err := s.RecipeRating(ctx, recipeId)
	return review, summary, err
}

func (s *Service) RecipeRating(ctx context.Context, recipeId int64) (ratings.Summary, error) {
	reviews, err := s.Reviews.ListByRecipe(ctx, recipeId)
	if err != nil {
		return ratings.Summary{}, err
	}
	return ratings.Summarize(reviews), nil
}

// DeleteReview removes the requester's own review of a recipe.
func (s *Service) DeleteReview(ctx context.Context, requester int64, recipeId int64) (ratings.Summary, error) {
	if err := requireUser(requester); err != nil {
		return ratings.Summary{}, err
	}
	if _, err := s.visibleRecipe(ctx, requester, recipeId); err != nil {
		return ratings.Summary{}, err
	}
	if err := s.Reviews.Delete(ctx, recipeId, requester); err != nil {
		return ratings.Summary{}, err
	}
	return s.RecipeRating(ctx, recipeId)
}
