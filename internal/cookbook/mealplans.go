package cookbook

import (
	"context"
	"strconv"

	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/nutrition"
)

// MealPlanEntry is one scheduled slot. Recipe is nil when the recipe was
// deleted after the slot was read.
type MealPlanEntry struct {
	Item   data.MealPlanItemDTO
	Recipe *data.RecipeDTO
}

type MealPlanDetail struct {
	Plan    data.MealPlanDTO
	Entries []MealPlanEntry
	Totals  nutrition.Totals
}

type MealPlanNutrition struct {
	Totals    nutrition.Totals
	ItemCount int
}

func (s *Service) ListMealPlans(ctx context.Context, requester int64, params data.QueryParams) (data.QueryResults[data.MealPlanDTO], error) {
	if err := requireUser(requester); err != nil {
		return data.QueryResults[data.MealPlanDTO]{}, err
	}
	return s.MealPlans.List(ctx, requester, params)
}

func (s *Service) CreateMealPlan(ctx context.Context, requester int64, input data.MealPlanInputDTO) (data.MealPlanDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.MealPlanDTO{}, err
	}
	if err := input.Validate(); err != nil {
		return data.MealPlanDTO{}, err
	}
	return s.MealPlans.Create(ctx, requester, input)
}

func (s *Service) RenameMealPlan(ctx context.Context, requester int64, mealPlanId int64, input data.MealPlanInputDTO) (data.MealPlanDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.MealPlanDTO{}, err
	}
	if err := input.Validate(); err != nil {
		return data.MealPlanDTO{}, err
	}
	return s.MealPlans.Update(ctx, requester, mealPlanId, input)
}

// entries pairs every item of a plan with its recipe.
func (s *Service) entries(ctx context.Context, mealPlanId int64) ([]MealPlanEntry, error) {
	items, err := s.MealPlans.ListItems(ctx, mealPlanId)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.RecipeId)
	}
	recipes, err := s.Recipes.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	entries := make([]MealPlanEntry, 0, len(items))
	for _, item := range items {
		entry := MealPlanEntry{Item: item}
		if recipe, ok := recipes[item.RecipeId]; ok {
			entry.Recipe = &recipe
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func scheduledRecipes(entries []MealPlanEntry) []data.RecipeDTO {
	recipes := make([]data.RecipeDTO, 0, len(entries))
	for _, entry := range entries {
		if entry.Recipe != nil {
			recipes = append(recipes, *entry.Recipe)
		}
	}
	return recipes
}

func (s *Service) GetMealPlan(ctx context.Context, requester int64, mealPlanId int64) (MealPlanDetail, error) {
	if err := requireUser(requester); err != nil {
		return MealPlanDetail{}, err
	}
	plan, err := s.MealPlans.Get(ctx, requester, mealPlanId)
	if err != nil {
		return MealPlanDetail{}, err
	}
	entries, err := s.entries(ctx, mealPlanId)
	if err != nil {
		return MealPlanDetail{}, err
	}
	return MealPlanDetail{
		Plan:    plan,
		Entries: entries,
		Totals:  nutrition.Sum(scheduledRecipes(entries)),
	}, nil
}

func (s *Service) GetMealPlanNutrition(ctx context.Context, requester int64, mealPlanId int64) (MealPlanNutrition, error) {
	detail, err := s.GetMealPlan(ctx, requester, mealPlanId)
	if err != nil {
		return MealPlanNutrition{}, err
	}
	return MealPlanNutrition{
		Totals:    detail.Totals,
		ItemCount: len(detail.Entries),
	}, nil
}

// AddMealPlanItem schedules one of the requester's own recipes into a free
// (date, meal type) slot of the plan.
func (s *Service) AddMealPlanItem(ctx context.Context, requester int64, mealPlanId int64, input data.MealPlanItemInputDTO) (MealPlanEntry, error) {
	if err := requireUser(requester); err != nil {
		return MealPlanEntry{}, err
	}
	if _, err := s.MealPlans.Get(ctx, requester, mealPlanId); err != nil {
		return MealPlanEntry{}, err
	}
	if err := input.Validate(); err != nil {
		return MealPlanEntry{}, err
	}
	recipe, err := s.ownedRecipe(ctx, requester, *input.RecipeId)
	if err != nil {
		return MealPlanEntry{}, err
	}
	item, err := s.MealPlans.AddItem(ctx, mealPlanId, input)
	if err != nil {
		return MealPlanEntry{}, err
	}
	return MealPlanEntry{Item: item, Recipe: &recipe}, nil
}

func (s *Service) RemoveMealPlanItem(ctx context.Context, requester int64, mealPlanId int64, itemId int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	if _, err := s.MealPlans.Get(ctx, requester, mealPlanId); err != nil {
		return err
	}
	items, err := s.MealPlans.ListItems(ctx, mealPlanId)
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Id == itemId {
			return s.MealPlans.DeleteItem(ctx, item)
		}
	}
	return exceptions.NotFound("meal plan item", strconv.FormatInt(itemId, 10))
}

func (s *Service) DeleteMealPlan(ctx context.Context, requester int64, mealPlanId int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	plan, err := s.MealPlans.Get(ctx, requester, mealPlanId)
	if err != nil {
		return err
	}
	return s.deleteMealPlan(ctx, plan)
}

// deleteMealPlan drops the items, detaches generated shopping lists and then
// removes the plan. The lists and their items stay.
func (s *Service) deleteMealPlan(ctx context.Context, plan data.MealPlanDTO) error {
	items, err := s.MealPlans.ListItems(ctx, plan.Id)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := s.MealPlans.DeleteItem(ctx, item); err != nil {
			return err
		}
	}
	lists, err := s.ShoppingLists.ListByMealPlan(ctx, plan.Id)
	if err != nil {
		return err
	}
	for _, list := range lists {
		if !access.Owns(list.Owner, plan.Owner) {
			continue
		}
		if err := ignoreNotFound(s.ShoppingLists.Unlink(ctx, list.Owner, list.Id)); err != nil {
			return err
		}
	}
	return s.MealPlans.Delete(ctx, plan.Owner, plan.Id)
}
