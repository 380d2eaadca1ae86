package util

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/access"
	"philcali.me/mealplanner/internal/auth"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/routes/filters"
)

// AuthorizedRoute rejects anonymous callers before route runs.
func AuthorizedRoute(route routes.Route) routes.Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		if _, ok := filters.IdentityFromContext(ctx); ok {
			return route(event, ctx)
		}
		return events.APIGatewayV2HTTPResponse{}, exceptions.Unauthorized()
	}
}

// Requester is the caller's user id, or access.ANONYMOUS.
func Requester(ctx context.Context) int64 {
	if identity, ok := filters.IdentityFromContext(ctx); ok {
		return identity.UserId
	}
	return access.ANONYMOUS
}

func Identity(ctx context.Context) auth.Identity {
	identity, _ := filters.IdentityFromContext(ctx)
	return identity
}

func RequestParam(ctx context.Context, name string) string {
	return routes.Params(ctx)[name]
}

// IntParam reads a numeric path parameter. A malformed id can never match a
// row, so it is reported as missing.
func IntParam(ctx context.Context, name string, resource string) (int64, error) {
	value := RequestParam(ctx, name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, exceptions.NotFound(resource, value)
	}
	return id, nil
}

func QueryParams(event events.APIGatewayV2HTTPRequest) (data.QueryParams, error) {
	var params data.QueryParams
	if sLimit, ok := event.QueryStringParameters["limit"]; ok {
		limit, err := strconv.Atoi(sLimit)
		if err != nil {
			return params, exceptions.InvalidInput("Limit parameter was not a number type.")
		}
		params.Limit = limit
	}
	if token, ok := event.QueryStringParameters["nextToken"]; ok && token != "" {
		params.NextToken = []byte(token)
	}
	return params, nil
}

// DietaryTypeParam reads the optional dietary_type query filter.
func DietaryTypeParam(event events.APIGatewayV2HTTPRequest) (*data.DietaryType, error) {
	value, ok := event.QueryStringParameters["dietary_type"]
	if !ok || value == "" {
		return nil, nil
	}
	dietaryType := data.DietaryType(value)
	if !dietaryType.Valid() {
		verr := exceptions.Validation()
		verr.Add("dietary_type", "must be one of none, vegan, vegetarian, gluten_free")
		return nil, verr
	}
	return &dietaryType, nil
}

func ParseBody(event events.APIGatewayV2HTTPRequest, input interface{}) error {
	if event.Body == "" {
		return exceptions.InvalidInput("Request body is required.")
	}
	if err := json.Unmarshal([]byte(event.Body), input); err != nil {
		return exceptions.InvalidInput(err.Error())
	}
	return nil
}

func SerializeResponse[T interface{}, R interface{}](delayed func(T) R, thing T, err error, statusCode int) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	body, err := json.Marshal(delayed(thing))
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func SerializeResponseOK[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 200)
}

func SerializeResponseCreated[T interface{}, R interface{}](delayed func(T) R, thing T, err error) (events.APIGatewayV2HTTPResponse, error) {
	return SerializeResponse(delayed, thing, err, 201)
}

func SerializeResponseNoContent(err error) (events.APIGatewayV2HTTPResponse, error) {
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: 204,
	}, nil
}

// Page is one page of a listing. NextToken is opaque and passed back verbatim
// as the nextToken query parameter.
type Page[R interface{}] struct {
	Items     []R    `json:"items"`
	NextToken string `json:"nextToken,omitempty"`
}

func ConvertQueryResults[D interface{}, R interface{}](items data.QueryResults[D], thunk func(D) R) Page[R] {
	newItems := make([]R, len(items.Items))
	for i, rd := range items.Items {
		newItems[i] = thunk(rd)
	}
	return Page[R]{
		Items:     newItems,
		NextToken: string(items.NextToken),
	}
}

func ConvertQueryResultsPartial[D interface{}, R interface{}](thunk func(D) R) func(data.QueryResults[D]) Page[R] {
	return func(d data.QueryResults[D]) Page[R] {
		return ConvertQueryResults(d, thunk)
	}
}

func MapOnList[D interface{}, R interface{}](items []D, thunk func(D) R) []R {
	rtn := make([]R, len(items))
	for i, item := range items {
		rtn[i] = thunk(item)
	}
	return rtn
}

// Same passes payloads that are already shaped for the wire.
func Same[T interface{}](thing T) T {
	return thing
}
