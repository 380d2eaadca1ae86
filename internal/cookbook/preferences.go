package cookbook

import (
	"context"

	"philcali.me/mealplanner/internal/data"
)

func (s *Service) GetPreferences(ctx context.Context, requester int64) (data.DietaryPreferenceDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.DietaryPreferenceDTO{}, err
	}
	return s.Preferences.GetOrCreate(ctx, requester)
}

func (s *Service) UpdatePreferences(ctx context.Context, requester int64, input data.DietaryPreferenceInputDTO) (data.DietaryPreferenceDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.DietaryPreferenceDTO{}, err
	}
	return s.Preferences.Put(ctx, requester, input)
}
