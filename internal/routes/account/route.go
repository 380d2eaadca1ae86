package account

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/util"
)

type AccountService struct {
	cookbook *cookbook.Service
}

func NewRoute(service *cookbook.Service) routes.Service {
	return &AccountService{
		cookbook: service,
	}
}

func (as *AccountService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/stats":             util.AuthorizedRoute(as.Stats),
		"GET:/nutrition-summary": util.AuthorizedRoute(as.NutritionSummary),
		"DELETE:/account":        util.AuthorizedRoute(as.DeleteAccount),
	}
}

func (as *AccountService) Stats(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	stats, err := as.cookbook.Stats(ctx, util.Requester(ctx))
	return util.SerializeResponseOK(NewStats, stats, err)
}

func (as *AccountService) NutritionSummary(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	summary, err := as.cookbook.NutritionSummary(ctx, util.Requester(ctx))
	return util.SerializeResponseOK(NewNutritionSummary, summary, err)
}

func (as *AccountService) DeleteAccount(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	return util.SerializeResponseNoContent(as.cookbook.DeleteAccount(ctx, util.Requester(ctx)))
}
