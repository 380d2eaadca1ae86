package mealplans

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/shopping"
	"philcali.me/mealplanner/internal/routes/util"
)

type MealPlanService struct {
	cookbook *cookbook.Service
}

func NewRoute(service *cookbook.Service) routes.Service {
	return &MealPlanService{
		cookbook: service,
	}
}

func (ms *MealPlanService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/meal-plans":                      util.AuthorizedRoute(ms.ListMealPlans),
		"POST:/meal-plans":                     util.AuthorizedRoute(ms.CreateMealPlan),
		"GET:/meal-plans/:id":                  util.AuthorizedRoute(ms.GetMealPlan),
		"PUT:/meal-plans/:id":                  util.AuthorizedRoute(ms.RenameMealPlan),
		"DELETE:/meal-plans/:id":               util.AuthorizedRoute(ms.DeleteMealPlan),
		"GET:/meal-plans/:id/nutrition":        util.AuthorizedRoute(ms.GetNutrition),
		"POST:/meal-plans/:id/items":           util.AuthorizedRoute(ms.AddItem),
		"DELETE:/meal-plans/:id/items/:itemId": util.AuthorizedRoute(ms.RemoveItem),
		"POST:/meal-plans/:id/shopping-list":   util.AuthorizedRoute(ms.GenerateShoppingList),
	}
}

func (ms *MealPlanService) ListMealPlans(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := ms.cookbook.ListMealPlans(ctx, util.Requester(ctx), params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewMealPlan), items, err)
}

func (ms *MealPlanService) CreateMealPlan(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := MealPlanInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := ms.cookbook.CreateMealPlan(ctx, util.Requester(ctx), input.ToData())
	return util.SerializeResponseCreated(NewMealPlan, created, err)
}

func (ms *MealPlanService) GetMealPlan(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	detail, err := ms.cookbook.GetMealPlan(ctx, util.Requester(ctx), planId)
	return util.SerializeResponseOK(NewMealPlanDetail, detail, err)
}

func (ms *MealPlanService) RenameMealPlan(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	input := MealPlanInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	plan, err := ms.cookbook.RenameMealPlan(ctx, util.Requester(ctx), planId, input.ToData())
	return util.SerializeResponseOK(NewMealPlan, plan, err)
}

func (ms *MealPlanService) DeleteMealPlan(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(ms.cookbook.DeleteMealPlan(ctx, util.Requester(ctx), planId))
}

func (ms *MealPlanService) GetNutrition(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	summary, err := ms.cookbook.GetMealPlanNutrition(ctx, util.Requester(ctx), planId)
	return util.SerializeResponseOK(NewMealPlanNutrition, summary, err)
}

func (ms *MealPlanService) AddItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	input := MealPlanItemInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	entry, err := ms.cookbook.AddMealPlanItem(ctx, util.Requester(ctx), planId, input.ToData())
	return util.SerializeResponseCreated(NewMealPlanItem, entry, err)
}

func (ms *MealPlanService) RemoveItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	itemId, err := util.IntParam(ctx, "itemId", "meal plan item")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(ms.cookbook.RemoveMealPlanItem(ctx, util.Requester(ctx), planId, itemId))
}

func (ms *MealPlanService) GenerateShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	planId, err := util.IntParam(ctx, "id", "meal plan")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	detail, err := ms.cookbook.GenerateShoppingList(ctx, util.Requester(ctx), planId)
	return util.SerializeResponseCreated(shopping.NewShoppingListDetail, detail, err)
}
