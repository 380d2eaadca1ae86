package data

import (
	"context"
	"time"
)

type ReviewDTO struct {
	PK           string    `dynamodbav:"PK"`
	SK           string    `dynamodbav:"SK"`
	FirstIndex   string    `dynamodbav:"GS1-PK"`
	FirstSort    string    `dynamodbav:"GS1-SK"`
	Id           int64     `dynamodbav:"id"`
	RecipeId     int64     `dynamodbav:"recipeId"`
	RecipeOwner  int64     `dynamodbav:"recipeOwner"`
	RecipeTitle  string    `dynamodbav:"recipeTitle"`
	Reviewer     int64     `dynamodbav:"reviewer"`
	ReviewerName string    `dynamodbav:"reviewerName"`
	Rating       int       `dynamodbav:"rating"`
	Comment      *string   `dynamodbav:"comment"`
	CreateTime   time.Time `dynamodbav:"createTime"`
	UpdateTime   time.Time `dynamodbav:"updateTime"`
}

type ReviewInputDTO struct {
	Rating       *int    `json:"rating" dynamodbav:"rating" validate:"required,min=1,max=5"`
	Comment      *string `json:"comment" dynamodbav:"comment"`
	ReviewerName string  `json:"-" dynamodbav:"reviewerName"`
}

func (in ReviewInputDTO) Validate() error {
	return check(in, false)
}

type ReviewRepository interface {
	// Upsert writes the single review of reviewer on recipe, replacing the
	// rating and comment of an existing one in place.
	Upsert(ctx context.Context, recipe RecipeDTO, reviewer int64, input ReviewInputDTO) (ReviewDTO, error)
	Get(ctx context.Context, recipeId int64, reviewer int64) (ReviewDTO, error)
	Delete(ctx context.Context, recipeId int64, reviewer int64) error
	ListByRecipe(ctx context.Context, recipeId int64) ([]ReviewDTO, error)
	ListByReviewer(ctx context.Context, reviewer int64) ([]ReviewDTO, error)
}
