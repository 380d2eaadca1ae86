package data

import (
	"context"
	"time"
)

type MealType string

const (
	MEAL_BREAKFAST MealType = "breakfast"
	MEAL_LUNCH     MealType = "lunch"
	MEAL_DINNER    MealType = "dinner"
	MEAL_SNACK     MealType = "snack"
)

type MealPlanDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Id         int64     `dynamodbav:"id"`
	Owner      int64     `dynamodbav:"owner"`
	Name       string    `dynamodbav:"name"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type MealPlanInputDTO struct {
	Name *string `json:"name" dynamodbav:"name" validate:"required,notblank,max=255"`
}

func (in MealPlanInputDTO) Validate() error {
	return check(in, false)
}

type MealPlanItemDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	FirstIndex string    `dynamodbav:"GS1-PK"`
	FirstSort  string    `dynamodbav:"GS1-SK"`
	Id         int64     `dynamodbav:"id"`
	MealPlanId int64     `dynamodbav:"mealPlanId"`
	RecipeId   int64     `dynamodbav:"recipeId"`
	MealDate   string    `dynamodbav:"mealDate"`
	MealType   MealType  `dynamodbav:"mealType"`
	CreateTime time.Time `dynamodbav:"createTime"`
}

type MealPlanItemInputDTO struct {
	RecipeId *int64    `json:"recipe_id" dynamodbav:"recipeId" validate:"required,gt=0"`
	MealDate *string   `json:"meal_date" dynamodbav:"mealDate" validate:"required,datetime=2006-01-02"`
	MealType *MealType `json:"meal_type" dynamodbav:"mealType" validate:"required,oneof=breakfast lunch dinner snack"`
}

func (in MealPlanItemInputDTO) Validate() error {
	return check(in, false)
}

type MealPlanRepository interface {
	Repository[MealPlanDTO, MealPlanInputDTO]
	// AddItem fails with a ConflictError when the plan already has a recipe in
	// the same date and meal type slot.
	AddItem(ctx context.Context, mealPlanId int64, input MealPlanItemInputDTO) (MealPlanItemDTO, error)
	// ListItems returns the items ordered by meal date, then meal type.
	ListItems(ctx context.Context, mealPlanId int64) ([]MealPlanItemDTO, error)
	DeleteItem(ctx context.Context, item MealPlanItemDTO) error
	ListItemsByRecipe(ctx context.Context, recipeId int64) ([]MealPlanItemDTO, error)
}
