package subscriptions

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/util"
)

type SubscriptionService struct {
	cookbook *cookbook.Service
}

func NewRoute(service *cookbook.Service) routes.Service {
	return &SubscriptionService{
		cookbook: service,
	}
}

func (s *SubscriptionService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/subscriptions":        util.AuthorizedRoute(s.ListSubscriptions),
		"POST:/subscriptions":       util.AuthorizedRoute(s.CreateSubscription),
		"DELETE:/subscriptions/:id": util.AuthorizedRoute(s.DeleteSubscription),
	}
}

func (s *SubscriptionService) ListSubscriptions(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := s.cookbook.ListSubscriptions(ctx, util.Requester(ctx), params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewSubscription), items, err)
}

func (s *SubscriptionService) CreateSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := SubscriptionInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := s.cookbook.Subscribe(ctx, util.Requester(ctx), input.toData())
	return util.SerializeResponseCreated(NewSubscription, created, err)
}

func (s *SubscriptionService) DeleteSubscription(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	subscriptionId, err := util.IntParam(ctx, "id", "subscription")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(s.cookbook.Unsubscribe(ctx, util.Requester(ctx), subscriptionId))
}
