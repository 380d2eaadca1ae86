package data

import (
	"context"
	"time"
)

type FavoriteDTO struct {
	PK          string    `dynamodbav:"PK"`
	SK          string    `dynamodbav:"SK"`
	FirstIndex  string    `dynamodbav:"GS1-PK"`
	FirstSort   string    `dynamodbav:"GS1-SK"`
	SecondIndex string    `dynamodbav:"GS2-PK"`
	SecondSort  string    `dynamodbav:"GS2-SK"`
	Id          int64     `dynamodbav:"id"`
	UserId      int64     `dynamodbav:"userId"`
	RecipeId    int64     `dynamodbav:"recipeId"`
	CreateTime  time.Time `dynamodbav:"createTime"`
}

type FavoriteRepository interface {
	// Add fails with a ConflictError when the pair already exists.
	Add(ctx context.Context, userId int64, recipeId int64) (FavoriteDTO, error)
	// Remove fails with a NotFoundError when the pair does not exist.
	Remove(ctx context.Context, userId int64, recipeId int64) error
	Exists(ctx context.Context, userId int64, recipeId int64) (bool, error)
	// List pages through the favorites of userId, most recently added first.
	List(ctx context.Context, userId int64, params QueryParams) (QueryResults[FavoriteDTO], error)
	ListByRecipe(ctx context.Context, recipeId int64) ([]FavoriteDTO, error)
	Count(ctx context.Context, userId int64) (int, error)
}
