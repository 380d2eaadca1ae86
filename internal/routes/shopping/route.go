package shopping

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/util"
)

type ShoppingListService struct {
	cookbook *cookbook.Service
}

func NewRoute(service *cookbook.Service) routes.Service {
	return &ShoppingListService{
		cookbook: service,
	}
}

func (sl *ShoppingListService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/shopping-lists":                  util.AuthorizedRoute(sl.ListShoppingLists),
		"POST:/shopping-lists":                 util.AuthorizedRoute(sl.CreateShoppingList),
		"GET:/shopping-lists/:id":              util.AuthorizedRoute(sl.GetShoppingList),
		"PUT:/shopping-lists/:id":              util.AuthorizedRoute(sl.RenameShoppingList),
		"DELETE:/shopping-lists/:id":           util.AuthorizedRoute(sl.DeleteShoppingList),
		"POST:/shopping-lists/:id/items":       util.AuthorizedRoute(sl.AddItem),
		"POST:/shopping-list-items/:id/toggle": util.AuthorizedRoute(sl.ToggleItem),
		"DELETE:/shopping-list-items/:id":      util.AuthorizedRoute(sl.DeleteItem),
	}
}

func (sl *ShoppingListService) ListShoppingLists(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := sl.cookbook.ListShoppingLists(ctx, util.Requester(ctx), params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewShoppingList), items, err)
}

func (sl *ShoppingListService) CreateShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := ShoppingListInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := sl.cookbook.CreateShoppingList(ctx, util.Requester(ctx), input.ToData())
	return util.SerializeResponseCreated(NewShoppingList, created, err)
}

func (sl *ShoppingListService) GetShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	listId, err := util.IntParam(ctx, "id", "shopping list")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	detail, err := sl.cookbook.GetShoppingList(ctx, util.Requester(ctx), listId)
	return util.SerializeResponseOK(NewShoppingListDetail, detail, err)
}

func (sl *ShoppingListService) RenameShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	listId, err := util.IntParam(ctx, "id", "shopping list")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	input := ShoppingListInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	list, err := sl.cookbook.RenameShoppingList(ctx, util.Requester(ctx), listId, input.ToData())
	return util.SerializeResponseOK(NewShoppingList, list, err)
}

func (sl *ShoppingListService) DeleteShoppingList(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	listId, err := util.IntParam(ctx, "id", "shopping list")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(sl.cookbook.DeleteShoppingList(ctx, util.Requester(ctx), listId))
}

func (sl *ShoppingListService) AddItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	listId, err := util.IntParam(ctx, "id", "shopping list")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	input := ShoppingListItemInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := sl.cookbook.AddShoppingListItem(ctx, util.Requester(ctx), listId, input.ToData())
	return util.SerializeResponseCreated(NewShoppingListItem, item, err)
}

func (sl *ShoppingListService) ToggleItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	itemId, err := util.IntParam(ctx, "id", "shopping list item")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	item, err := sl.cookbook.ToggleShoppingListItem(ctx, util.Requester(ctx), itemId)
	return util.SerializeResponseOK(NewShoppingListItem, item, err)
}

func (sl *ShoppingListService) DeleteItem(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	itemId, err := util.IntParam(ctx, "id", "shopping list item")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(sl.cookbook.DeleteShoppingListItem(ctx, util.Requester(ctx), itemId))
}
