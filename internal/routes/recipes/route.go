package recipes

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/ratings"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/util"
)

type RecipeService struct {
	cookbook *cookbook.Service
}

func NewRoute(service *cookbook.Service) routes.Service {
	return &RecipeService{
		cookbook: service,
	}
}

func (rs *RecipeService) GetRoutes() map[string]routes.Route {
	return map[string]routes.Route{
		"GET:/recipes":               util.AuthorizedRoute(rs.ListRecipes),
		"POST:/recipes":              util.AuthorizedRoute(rs.CreateRecipe),
		"GET:/recipes/shared":        rs.ListSharedRecipes,
		"GET:/recipes/:id":           rs.GetRecipe,
		"PUT:/recipes/:id":           util.AuthorizedRoute(rs.UpdateRecipe),
		"PATCH:/recipes/:id":         util.AuthorizedRoute(rs.UpdateRecipe),
		"DELETE:/recipes/:id":        util.AuthorizedRoute(rs.DeleteRecipe),
		"POST:/recipes/:id/favorite": util.AuthorizedRoute(rs.ToggleFavorite),
		"POST:/recipes/:id/review":   util.AuthorizedRoute(rs.SubmitReview),
		"DELETE:/recipes/:id/review": util.AuthorizedRoute(rs.DeleteReview),
		"GET:/favorites":             util.AuthorizedRoute(rs.ListFavorites),
	}
}

func filterFrom(event events.APIGatewayV2HTTPRequest) (data.RecipeFilter, error) {
	dietaryType, err := util.DietaryTypeParam(event)
	if err != nil {
		return data.RecipeFilter{}, err
	}
	filter := data.RecipeFilter{DietaryType: dietaryType}
	if search := strings.TrimSpace(event.QueryStringParameters["search"]); search != "" {
		filter.Search = &search
	}
	return filter, nil
}

func (rs *RecipeService) ListRecipes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	filter, err := filterFrom(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := rs.cookbook.ListRecipes(ctx, util.Requester(ctx), filter, params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewRecipe), items, err)
}

func (rs *RecipeService) ListSharedRecipes(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	filter, err := filterFrom(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := rs.cookbook.ListSharedRecipes(ctx, filter, params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewSharedRecipe), items, err)
}

func (rs *RecipeService) GetRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipeId, err := util.IntParam(ctx, "id", "recipe")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	detail, err := rs.cookbook.GetRecipe(ctx, util.Requester(ctx), recipeId)
	return util.SerializeResponseOK(NewRecipeDetail, detail, err)
}

func (rs *RecipeService) CreateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	input := RecipeInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	created, err := rs.cookbook.CreateRecipe(ctx, util.Requester(ctx), input.ToData())
	return util.SerializeResponseCreated(NewRecipe, created, err)
}

func (rs *RecipeService) UpdateRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipeId, err := util.IntParam(ctx, "id", "recipe")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	input := RecipeInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	updated, err := rs.cookbook.UpdateRecipe(ctx, util.Requester(ctx), recipeId, input.ToData())
	return util.SerializeResponseOK(NewRecipe, updated, err)
}

func (rs *RecipeService) DeleteRecipe(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipeId, err := util.IntParam(ctx, "id", "recipe")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return util.SerializeResponseNoContent(rs.cookbook.DeleteRecipe(ctx, util.Requester(ctx), recipeId))
}

func (rs *RecipeService) ToggleFavorite(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipeId, err := util.IntParam(ctx, "id", "recipe")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	favorite, err := rs.cookbook.ToggleFavorite(ctx, util.Requester(ctx), recipeId)
	return util.SerializeResponseOK(NewFavorite, favorite, err)
}

func (rs *RecipeService) ListFavorites(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	params, err := util.QueryParams(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	dietaryType, err := util.DietaryTypeParam(event)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	items, err := rs.cookbook.ListFavorites(ctx, util.Requester(ctx), dietaryType, params)
	return util.SerializeResponseOK(util.ConvertQueryResultsPartial(NewRecipe), items, err)
}

func (rs *RecipeService) SubmitReview(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipeId, err := util.IntParam(ctx, "id", "recipe")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	input := ReviewInput{}
	if err := util.ParseBody(event, &input); err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	identity := util.Identity(ctx)
	_, summary, err := rs.cookbook.SubmitReview(ctx, identity.UserId, identity.Username, recipeId, data.ReviewInputDTO{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	return util.SerializeResponseOK(util.Same[ratings.Summary], summary, err)
}

func (rs *RecipeService) DeleteReview(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
	recipeId, err := util.IntParam(ctx, "id", "recipe")
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	summary, err := rs.cookbook.DeleteReview(ctx, util.Requester(ctx), recipeId)
	return util.SerializeResponseOK(util.Same[ratings.Summary], summary, err)
}
