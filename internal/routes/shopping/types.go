package shopping

import (
	"time"

	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/routes/util"
)

type ShoppingListInput struct {
	Name       *string `json:"name"`
	MealPlanId *int64  `json:"meal_plan_id"`
}

func (l *ShoppingListInput) ToData() data.ShoppingListInputDTO {
	return data.ShoppingListInputDTO{
		Name:       l.Name,
		MealPlanId: l.MealPlanId,
	}
}

type ShoppingList struct {
	Id         int64     `json:"id"`
	Name       string    `json:"name"`
	MealPlanId *int64    `json:"meal_plan_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewShoppingList(list data.ShoppingListDTO) ShoppingList {
	return ShoppingList{
		Id:         list.Id,
		Name:       list.Name,
		MealPlanId: list.MealPlanId,
		CreatedAt:  list.CreateTime,
		UpdatedAt:  list.UpdateTime,
	}
}

type ShoppingListItemInput struct {
	ItemName *string `json:"item_name"`
	Quantity *string `json:"quantity"`
}

func (in *ShoppingListItemInput) ToData() data.ShoppingListItemInputDTO {
	return data.ShoppingListItemInputDTO{
		Name:     in.ItemName,
		Quantity: in.Quantity,
	}
}

type ShoppingListItem struct {
	Id        int64  `json:"id"`
	ListId    int64  `json:"shopping_list_id"`
	ItemName  string `json:"item_name"`
	Quantity  string `json:"quantity"`
	IsChecked bool   `json:"is_checked"`
}

func NewShoppingListItem(item data.ShoppingListItemDTO) ShoppingListItem {
	return ShoppingListItem{
		Id:        item.Id,
		ListId:    item.ListId,
		ItemName:  item.Name,
		Quantity:  item.Quantity,
		IsChecked: item.Checked,
	}
}

type ShoppingListDetail struct {
	ShoppingList
	Items []ShoppingListItem `json:"items"`
}

func NewShoppingListDetail(detail cookbook.ShoppingListDetail) ShoppingListDetail {
	return ShoppingListDetail{
		ShoppingList: NewShoppingList(detail.List),
		Items:        util.MapOnList(detail.Items, NewShoppingListItem),
	}
}
