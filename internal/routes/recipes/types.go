package recipes

import (
	"time"

	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/routes/util"
)

type RecipeInput struct {
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Ingredients  *string           `json:"ingredients"`
	Instructions *string           `json:"instructions"`
	Calories     *int              `json:"calories"`
	Protein      *float64          `json:"protein"`
	Fat          *float64          `json:"fat"`
	Carbs        *float64          `json:"carbs"`
	DietaryType  *data.DietaryType `json:"dietary_type"`
	IsShared     *bool             `json:"is_shared"`
}

func (r *RecipeInput) ToData() data.RecipeInputDTO {
	return data.RecipeInputDTO{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Calories:     r.Calories,
		Protein:      r.Protein,
		Fat:          r.Fat,
		Carbs:        r.Carbs,
		DietaryType:  r.DietaryType,
		Shared:       r.IsShared,
	}
}

type Recipe struct {
	Id           int64            `json:"id"`
	Owner        int64            `json:"owner"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Ingredients  []string         `json:"ingredients"`
	Instructions string           `json:"instructions"`
	Calories     int              `json:"calories"`
	Protein      float64          `json:"protein"`
	Fat          float64          `json:"fat"`
	Carbs        float64          `json:"carbs"`
	DietaryType  data.DietaryType `json:"dietary_type"`
	IsShared     bool             `json:"is_shared"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func NewRecipe(recipe data.RecipeDTO) Recipe {
	return Recipe{
		Id:           recipe.Id,
		Owner:        recipe.Owner,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  recipe.IngredientLines(),
		Instructions: recipe.Instructions,
		Calories:     recipe.Calories,
		Protein:      recipe.Protein,
		Fat:          recipe.Fat,
		Carbs:        recipe.Carbs,
		DietaryType:  recipe.DietaryType,
		IsShared:     recipe.Shared,
		CreatedAt:    recipe.CreateTime,
		UpdatedAt:    recipe.UpdateTime,
	}
}

type Review struct {
	Id           int64     `json:"id"`
	Reviewer     int64     `json:"reviewer"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewReview(review data.ReviewDTO) Review {
	return Review{
		Id:           review.Id,
		Reviewer:     review.Reviewer,
		ReviewerName: review.ReviewerName,
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreateTime,
		UpdatedAt:    review.UpdateTime,
	}
}

type ReviewInput struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type RecipeDetail struct {
	Recipe
	Reviews     []Review `json:"reviews"`
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount int      `json:"review_count"`
	IsFavorite  bool     `json:"is_favorite"`
}

func NewRecipeDetail(detail cookbook.RecipeDetail) RecipeDetail {
	return RecipeDetail{
		Recipe:      NewRecipe(detail.Recipe),
		Reviews:     util.MapOnList(detail.Reviews, NewReview),
		AvgRating:   detail.Rating.Average,
		ReviewCount: detail.Rating.Count,
		IsFavorite:  detail.Favorite,
	}
}

type SharedRecipe struct {
	Recipe
	AvgRating   *float64 `json:"avg_rating"`
	ReviewCount int      `json:"review_count"`
}

func NewSharedRecipe(shared cookbook.SharedRecipe) SharedRecipe {
	return SharedRecipe{
		Recipe:      NewRecipe(shared.Recipe),
		AvgRating:   shared.Rating.Average,
		ReviewCount: shared.Rating.Count,
	}
}

type Favorite struct {
	IsFavorite bool `json:"is_favorite"`
}

func NewFavorite(favorite bool) Favorite {
	return Favorite{IsFavorite: favorite}
}
