package preferences

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/util"
)

type PreferenceService struct {
	cookbook *cookbook.Service
}

func NewRoute(service *cookbook.Service) routes.Service {
	return &PreferenceService{
		cookbook: service,
	}
}

func (ps *PreferenceService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/dietary-preferences": util.AuthorizedRoute(ps.GetPreferences),
		"PUT:/dietary-preferences": util.AuthorizedRoute(ps.UpdatePreferences),
	}
}

func (ps *PreferenceService) GetPreferences(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	pref, err := ps.cookbook.GetPreferences(ctx, util.Requester(ctx))
	return util.SerializeResponseOK(NewDietaryPreference, pref, err)
}

func (ps *PreferenceService) UpdatePreferences(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := DietaryPreferenceInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	pref, err := ps.cookbook.UpdatePreferences(ctx, util.Requester(ctx), input.ToData())
	return util.SerializeResponseOK(NewDietaryPreference, pref, err)
}
