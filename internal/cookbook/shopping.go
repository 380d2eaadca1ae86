package cookbook

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/ingredients"
	"philcali.me/mealplanner/internal/logger"
)

const (
	GENERATED_LIST_NAME = "Shopping List for %s"
	DEFAULT_QUANTITY    = "1"
)

type ShoppingListDetail struct {
	List  data.ShoppingListDTO
	Items []data.ShoppingListItemDTO
}

// GenerateShoppingList collects the distinct ingredient lines of every
// scheduled recipe into a new list linked to the plan. Each call creates a
// new list.
func (s *Service) GenerateShoppingList(ctx context.Context, requester int64, mealPlanId int64) (ShoppingListDetail, error) {
	if err := requireUser(requester); err != nil {
		return ShoppingListDetail{}, err
	}
	plan, err := s.MealPlans.Get(ctx, requester, mealPlanId)
	if err != nil {
		return ShoppingListDetail{}, err
	}
	entries, err := s.entries(ctx, mealPlanId)
	if err != nil {
		return ShoppingListDetail{}, err
	}
	blocks := make([]string, 0, len(entries))
	for _, recipe := range scheduledRecipes(entries) {
		blocks = append(blocks, recipe.Ingredients)
	}
	names := ingredients.Distinct(blocks...)
	inputs := make([]data.ShoppingListItemInputDTO, len(names))
	for i := range names {
		quantity := DEFAULT_QUANTITY
		inputs[i] = data.ShoppingListItemInputDTO{
			Name:     &names[i],
			Quantity: &quantity,
		}
	}
	name := fmt.Sprintf(GENERATED_LIST_NAME, plan.Name)
	list, items, err := s.ShoppingLists.CreateWithItems(ctx, requester, data.ShoppingListInputDTO{
		Name:       &name,
		MealPlanId: &plan.Id,
	}, inputs)
	if err != nil {
		logger.Warn("Shopping list generation failed",
			zap.Int64("mealPlanId", plan.Id),
			zap.Int("expected", len(inputs)),
			zap.Int("written", len(items)),
			zap.Error(err))
	}
	return ShoppingListDetail{List: list, Items: items}, err
}

func (s *Service) ListShoppingLists(ctx context.Context, requester int64, params data.QueryParams) (data.QueryResults[data.ShoppingListDTO], error) {
	if err := requireUser(requester); err != nil {
		return data.QueryResults[data.ShoppingListDTO]{}, err
	}
	return s.ShoppingLists.List(ctx, requester, params)
}

func (s *Service) CreateShoppingList(ctx context.Context, requester int64, input data.ShoppingListInputDTO) (data.ShoppingListDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.ShoppingListDTO{}, err
	}
	if err := input.Validate(); err != nil {
		return data.ShoppingListDTO{}, err
	}
	if input.MealPlanId != nil {
		if _, err := s.MealPlans.Get(ctx, requester, *input.MealPlanId); err != nil {
			return data.ShoppingListDTO{}, err
		}
	}
	return s.ShoppingLists.Create(ctx, requester, input)
}

func (s *Service) GetShoppingList(ctx context.Context, requester int64, listId int64) (ShoppingListDetail, error) {
	if err := requireUser(requester); err != nil {
		return ShoppingListDetail{}, err
	}
	list, err := s.ShoppingLists.Get(ctx, requester, listId)
	if err != nil {
		return ShoppingListDetail{}, err
	}
	items, err := s.ShoppingLists.ListItems(ctx, listId)
	if err != nil {
		return ShoppingListDetail{}, err
	}
	return ShoppingListDetail{List: list, Items: items}, nil
}

// RenameShoppingList only changes the name; the meal plan link is kept.
func (s *Service) RenameShoppingList(ctx context.Context, requester int64, listId int64, input data.ShoppingListInputDTO) (data.ShoppingListDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.ShoppingListDTO{}, err
	}
	if err := input.Validate(); err != nil {
		return data.ShoppingListDTO{}, err
	}
	return s.ShoppingLists.Update(ctx, requester, listId, data.ShoppingListInputDTO{Name: input.Name})
}

func (s *Service) DeleteShoppingList(ctx context.Context, requester int64, listId int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	list, err := s.ShoppingLists.Get(ctx, requester, listId)
	if err != nil {
		return err
	}
	return s.deleteShoppingList(ctx, list)
}

func (s *Service) deleteShoppingList(ctx context.Context, list data.ShoppingListDTO) error {
	items, err := s.ShoppingLists.ListItems(ctx, list.Id)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := ignoreNotFound(s.ShoppingLists.DeleteItem(ctx, list.Owner, item.Id)); err != nil {
			return err
		}
	}
	return s.ShoppingLists.Delete(ctx, list.Owner, list.Id)
}

func (s *Service) AddShoppingListItem(ctx context.Context, requester int64, listId int64, input data.ShoppingListItemInputDTO) (data.ShoppingListItemDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.ShoppingListItemDTO{}, err
	}
	if _, err := s.ShoppingLists.Get(ctx, requester, listId); err != nil {
		return data.ShoppingListItemDTO{}, err
	}
	if err := input.Validate(); err != nil {
		return data.ShoppingListItemDTO{}, err
	}
	return s.ShoppingLists.AddItem(ctx, requester, listId, input)
}

func (s *Service) ownedItem(ctx context.Context, requester int64, itemId int64) (data.ShoppingListItemDTO, error) {
	item, err := s.ShoppingLists.GetItem(ctx, itemId)
	if err != nil {
		return item, err
	}
	if !access.Owns(item.Owner, requester) {
		return item, exceptions.NotFound("shopping list item", strconv.FormatInt(itemId, 10))
	}
	return item, nil
}

func (s *Service) ToggleShoppingListItem(ctx context.Context, requester int64, itemId int64) (data.ShoppingListItemDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.ShoppingListItemDTO{}, err
	}
	if _, err := s.ownedItem(ctx, requester, itemId); err != nil {
		return data.ShoppingListItemDTO{}, err
	}
	return s.ShoppingLists.ToggleItem(ctx, requester, itemId)
}

func (s *Service) DeleteShoppingListItem(ctx context.Context, requester int64, itemId int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	if _, err := s.ownedItem(ctx, requester, itemId); err != nil {
		return err
	}
	return s.ShoppingLists.DeleteItem(ctx, requester, itemId)
}
