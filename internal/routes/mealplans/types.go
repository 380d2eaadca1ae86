package mealplans

import (
	"time"

	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/nutrition"
	"philcali.me/mealplanner/internal/routes/recipes"
	"philcali.me/mealplanner/internal/routes/util"
)

type MealPlanInput struct {
	Name *string `json:"name"`
}

func (in *MealPlanInput) ToData() data.MealPlanInputDTO {
	return data.MealPlanInputDTO{Name: in.Name}
}

type MealPlan struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewMealPlan(plan data.MealPlanDTO) MealPlan {
	return MealPlan{
		Id:        plan.Id,
		Name:      plan.Name,
		CreatedAt: plan.CreateTime,
		UpdatedAt: plan.UpdateTime,
	}
}

type MealPlanItemInput struct {
	RecipeId *int64         `json:"recipe_id"`
	MealDate *string        `json:"meal_date"`
	MealType *data.MealType `json:"meal_type"`
}

func (in *MealPlanItemInput) ToData() data.MealPlanItemInputDTO {
	return data.MealPlanItemInputDTO{
		RecipeId: in.RecipeId,
		MealDate: in.MealDate,
		MealType: in.MealType,
	}
}

type MealPlanItem struct {
	Id       int64           `json:"id"`
	RecipeId int64           `json:"recipe_id"`
	MealDate string          `json:"meal_date"`
	MealType data.MealType   `json:"meal_type"`
	Recipe   *recipes.Recipe `json:"recipe"`
}

func NewMealPlanItem(entry cookbook.MealPlanEntry) MealPlanItem {
	item := MealPlanItem{
		Id:       entry.Item.Id,
		RecipeId: entry.Item.RecipeId,
		MealDate: entry.Item.MealDate,
		MealType: entry.Item.MealType,
	}
	if entry.Recipe != nil {
		recipe := recipes.NewRecipe(*entry.Recipe)
		item.Recipe = &recipe
	}
	return item
}

type MealPlanDetail struct {
	MealPlan
	Items  []MealPlanItem   `json:"items"`
	Totals nutrition.Totals `json:"nutrition"`
}

func NewMealPlanDetail(detail cookbook.MealPlanDetail) MealPlanDetail {
	return MealPlanDetail{
		MealPlan: NewMealPlan(detail.Plan),
		Items:    util.MapOnList(detail.Entries, NewMealPlanItem),
		Totals:   detail.Totals,
	}
}

type MealPlanNutrition struct {
	nutrition.Totals
	ItemCount int `json:"item_count"`
}

func NewMealPlanNutrition(summary cookbook.MealPlanNutrition) MealPlanNutrition {
	return MealPlanNutrition{
		Totals:    summary.Totals,
		ItemCount: summary.ItemCount,
	}
}
