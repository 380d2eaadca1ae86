package data

import (
	"context"
	"time"
)

type ShoppingListDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	FirstIndex *string   `dynamodbav:"GS1-PK,omitempty"`
	FirstSort  *string   `dynamodbav:"GS1-SK,omitempty"`
	Id         int64     `dynamodbav:"id"`
	Owner      int64     `dynamodbav:"owner"`
	Name       string    `dynamodbav:"name"`
	MealPlanId *int64    `dynamodbav:"mealPlanId,omitempty"`
	CreateTime time.Time `dynamodbav:"createTime"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

type ShoppingListInputDTO struct {
	Name       *string `json:"name" dynamodbav:"name" validate:"required,notblank,max=255"`
	MealPlanId *int64  `json:"meal_plan_id" dynamodbav:"mealPlanId"`
}

func (in ShoppingListInputDTO) Validate() error {
	return check(in, false)
}

type ShoppingListItemDTO struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	FirstIndex string `dynamodbav:"GS1-PK"`
	FirstSort  string `dynamodbav:"GS1-SK"`
	Id         int64  `dynamodbav:"id"`
	ListId     int64  `dynamodbav:"listId"`
	Owner      int64  `dynamodbav:"owner"`
	Name       string `dynamodbav:"name"`
	Quantity   string `dynamodbav:"quantity"`
	Checked    bool   `dynamodbav:"checked"`
}

type ShoppingListItemInputDTO struct {
	Name     *string `json:"item_name" dynamodbav:"name" validate:"required,notblank,max=255"`
	Quantity *string `json:"quantity" dynamodbav:"quantity" validate:"required,notblank,max=100"`
}

func (in ShoppingListItemInputDTO) Validate() error {
	return check(in, false)
}

type ShoppingListRepository interface {
	Repository[ShoppingListDTO, ShoppingListInputDTO]
	// CreateWithItems writes a list and its items as one unit where the store
	// allows it. Items that could not be written are reported through an
	// exceptions.PartialWriteError.
	CreateWithItems(ctx context.Context, owner int64, input ShoppingListInputDTO, items []ShoppingListItemInputDTO) (ShoppingListDTO, []ShoppingListItemDTO, error)
	ListByMealPlan(ctx context.Context, mealPlanId int64) ([]ShoppingListDTO, error)
	// Unlink clears the meal plan reference of a list, leaving the list intact.
	Unlink(ctx context.Context, owner int64, listId int64) error
	AddItem(ctx context.Context, owner int64, listId int64, input ShoppingListItemInputDTO) (ShoppingListItemDTO, error)
	GetItem(ctx context.Context, itemId int64) (ShoppingListItemDTO, error)
	ListItems(ctx context.Context, listId int64) ([]ShoppingListItemDTO, error)
	// ToggleItem flips the checked flag of an item owned by owner.
	ToggleItem(ctx context.Context, owner int64, itemId int64) (ShoppingListItemDTO, error)
	DeleteItem(ctx context.Context, owner int64, itemId int64) error
}
