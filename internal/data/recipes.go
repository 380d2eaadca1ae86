package data

import (
	"context"
	"strings"
	"time"
)

type DietaryType string

const (
	DIET_NONE        DietaryType = "none"
	DIET_VEGAN       DietaryType = "vegan"
	DIET_VEGETARIAN  DietaryType = "vegetarian"
	DIET_GLUTEN_FREE DietaryType = "gluten_free"
)

var DietaryTypes = []DietaryType{DIET_NONE, DIET_VEGAN, DIET_VEGETARIAN, DIET_GLUTEN_FREE}

func (d DietaryType) Valid() bool {
	for _, known := range DietaryTypes {
		if d == known {
			return true
		}
	}
	return false
}

// Label is the human readable name used in summaries.
func (d DietaryType) Label() string {
	switch d {
	case DIET_VEGAN:
		return "Vegan"
	case DIET_VEGETARIAN:
		return "Vegetarian"
	case DIET_GLUTEN_FREE:
		return "Gluten-Free"
	}
	return "None"
}

type RecipeDTO struct {
	PK           string      `dynamodbav:"PK"`
	SK           string      `dynamodbav:"SK"`
	FirstIndex   string      `dynamodbav:"GS1-PK"`
	FirstSort    string      `dynamodbav:"GS1-SK"`
	SecondIndex  *string     `dynamodbav:"GS2-PK,omitempty"`
	SecondSort   *string     `dynamodbav:"GS2-SK,omitempty"`
	Id           int64       `dynamodbav:"id"`
	Owner        int64       `dynamodbav:"owner"`
	Title        string      `dynamodbav:"title"`
	Description  string      `dynamodbav:"description"`
	Ingredients  string      `dynamodbav:"ingredients"`
	Instructions string      `dynamodbav:"instructions"`
	Calories     int         `dynamodbav:"calories"`
	Protein      float64     `dynamodbav:"protein"`
	Fat          float64     `dynamodbav:"fat"`
	Carbs        float64     `dynamodbav:"carbs"`
	DietaryType  DietaryType `dynamodbav:"dietaryType"`
	Shared       bool        `dynamodbav:"shared"`
	SearchText   string      `dynamodbav:"searchText"`
	CreateTime   time.Time   `dynamodbav:"createTime"`
	UpdateTime   time.Time   `dynamodbav:"updateTime"`
}

// IngredientLines splits the stored ingredients on line breaks.
func (r RecipeDTO) IngredientLines() []string {
	if r.Ingredients == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(r.Ingredients, "\r\n", "\n"), "\n")
}

type RecipeInputDTO struct {
	Title        *string      `json:"title" dynamodbav:"title" validate:"required,notblank,max=255"`
	Description  *string      `json:"description" dynamodbav:"description" validate:"required,notblank"`
	Ingredients  *string      `json:"ingredients" dynamodbav:"ingredients" validate:"required,notblank"`
	Instructions *string      `json:"instructions" dynamodbav:"instructions" validate:"required,notblank"`
	Calories     *int         `json:"calories" dynamodbav:"calories" validate:"required,gte=0"`
	Protein      *float64     `json:"protein" dynamodbav:"protein" validate:"required,gte=0"`
	Fat          *float64     `json:"fat" dynamodbav:"fat" validate:"required,gte=0"`
	Carbs        *float64     `json:"carbs" dynamodbav:"carbs" validate:"required,gte=0"`
	DietaryType  *DietaryType `json:"dietary_type" dynamodbav:"dietaryType" validate:"omitempty,oneof=none vegan vegetarian gluten_free"`
	Shared       *bool        `json:"shared" dynamodbav:"shared"`
}

// Validate checks the provided fields. On create every field but the
// dietary type and sharing flag is required.
func (in RecipeInputDTO) Validate(create bool) error {
	return check(in, !create)
}

// Merge overlays the provided fields on an existing recipe, yielding a fully
// populated input.
func (in RecipeInputDTO) Merge(existing RecipeDTO) RecipeInputDTO {
	pick := func(s *string, fallback string) *string {
		if s != nil {
			return s
		}
		return &fallback
	}
	merged := RecipeInputDTO{
		Title:        pick(in.Title, existing.Title),
		Description:  pick(in.Description, existing.Description),
		Ingredients:  pick(in.Ingredients, existing.Ingredients),
		Instructions: pick(in.Instructions, existing.Instructions),
		Calories:     in.Calories,
		Protein:      in.Protein,
		Fat:          in.Fat,
		Carbs:        in.Carbs,
		DietaryType:  in.DietaryType,
		Shared:       in.Shared,
	}
	if merged.Calories == nil {
		merged.Calories = &existing.Calories
	}
	if merged.Protein == nil {
		merged.Protein = &existing.Protein
	}
	if merged.Fat == nil {
		merged.Fat = &existing.Fat
	}
	if merged.Carbs == nil {
		merged.Carbs = &existing.Carbs
	}
	if merged.DietaryType == nil {
		merged.DietaryType = &existing.DietaryType
	}
	if merged.Shared == nil {
		merged.Shared = &existing.Shared
	}
	return merged
}

type RecipeFilter struct {
	DietaryType *DietaryType
	Search      *string
}

type RecipeRepository interface {
	Create(ctx context.Context, owner int64, input RecipeInputDTO) (RecipeDTO, error)
	Get(ctx context.Context, recipeId int64) (RecipeDTO, error)
	GetMany(ctx context.Context, recipeIds []int64) (map[int64]RecipeDTO, error)
	Update(ctx context.Context, owner int64, recipeId int64, input RecipeInputDTO) (RecipeDTO, error)
	Delete(ctx context.Context, owner int64, recipeId int64) error
	ListByOwner(ctx context.Context, owner int64, filter RecipeFilter, params QueryParams) (QueryResults[RecipeDTO], error)
	ListShared(ctx context.Context, filter RecipeFilter, params QueryParams) (QueryResults[RecipeDTO], error)
	CountByOwner(ctx context.Context, owner int64) (int, error)
}
