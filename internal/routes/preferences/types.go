package preferences

import (
	"time"

	"philcali.me/mealplanner/internal/data"
)

type DietaryPreference struct {
	Vegan              bool      `json:"vegan"`
	Vegetarian         bool      `json:"vegetarian"`
	GlutenFree         bool      `json:"gluten_free"`
	NutAllergy         bool      `json:"nut_allergy"`
	DairyFree          bool      `json:"dairy_free"`
	LowCarb            bool      `json:"low_carb"`
	CustomRestrictions *string   `json:"custom_restrictions"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func NewDietaryPreference(pref data.DietaryPreferenceDTO) DietaryPreference {
	return DietaryPreference{
		Vegan:              pref.Vegan,
		Vegetarian:         pref.Vegetarian,
		GlutenFree:         pref.GlutenFree,
		NutAllergy:         pref.NutAllergy,
		DairyFree:          pref.DairyFree,
		LowCarb:            pref.LowCarb,
		CustomRestrictions: pref.CustomRestrictions,
		CreatedAt:          pref.CreateTime,
		UpdatedAt:          pref.UpdateTime,
	}
}

type DietaryPreferenceInput struct {
	Vegan              *bool   `json:"vegan"`
	Vegetarian         *bool   `json:"vegetarian"`
	GlutenFree         *bool   `json:"gluten_free"`
	NutAllergy         *bool   `json:"nut_allergy"`
	DairyFree          *bool   `json:"dairy_free"`
	LowCarb            *bool   `json:"low_carb"`
	CustomRestrictions *string `json:"custom_restrictions"`
}

func (in *DietaryPreferenceInput) ToData() data.DietaryPreferenceInputDTO {
	return data.DietaryPreferenceInputDTO{
		Vegan:              in.Vegan,
		Vegetarian:         in.Vegetarian,
		GlutenFree:         in.GlutenFree,
		NutAllergy:         in.NutAllergy,
		DairyFree:          in.DairyFree,
		LowCarb:            in.LowCarb,
		CustomRestrictions: in.CustomRestrictions,
	}
}
