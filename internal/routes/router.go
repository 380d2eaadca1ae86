package routes

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/logger"
	"philcali.me/mealplanner/internal/routes/filters"
)

type Route func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error)

type Service interface {
	GetRoutes() map[string]Route
}

type paramsKey struct{}

// WithParams attaches the path parameters of the matched route.
func WithParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

func Params(ctx context.Context) map[string]string {
	params, _ := ctx.Value(paramsKey{}).(map[string]string)
	return params
}

type CachedMatcher struct {
	Matcher    *regexp.Regexp
	ParamNames []string
	Mutex      *sync.Mutex
}

type CachedRoute struct {
	Method  string
	Path    string
	Route   Route
	Matcher *CachedMatcher
}

var paramPattern = regexp.MustCompile(":[^/]+")

func (cr *CachedMatcher) Refresh(path string) *regexp.Regexp {
	cr.Mutex.Lock()
	defer cr.Mutex.Unlock()
	if cr.Matcher == nil {
		regexPath := paramPattern.ReplaceAllStringFunc(path, func(found string) string {
			cr.ParamNames = append(cr.ParamNames, found[1:])
			return "([^/]+)"
		})
		cr.Matcher = regexp.MustCompile("^" + regexPath + "$")
	}
	return cr.Matcher
}

func (cr *CachedRoute) MatchEvent(event events.APIGatewayV2HTTPRequest) (map[string]string, bool) {
	if event.RequestContext.HTTP.Method != cr.Method {
		return nil, false
	}
	if event.RawPath == cr.Path {
		return map[string]string{}, true
	}
	matcher := cr.Matcher.Refresh(cr.Path)
	values := matcher.FindStringSubmatch(event.RawPath)
	if values == nil {
		return nil, false
	}
	params := make(map[string]string, len(cr.Matcher.ParamNames))
	for i, p := range cr.Matcher.ParamNames {
		params[p] = values[i+1]
	}
	return params, true
}

func (cr *CachedRoute) paramCount() int {
	return len(paramPattern.FindAllString(cr.Path, -1))
}

type Router struct {
	Filters []filters.RequestFilter
	Routes  []CachedRoute
}

// NewRouter collects the routes of every service. Literal paths are tried
// before parameterized ones, so /recipes/shared never reaches /recipes/:id.
func NewRouter(secret []byte, services ...Service) *Router {
	var routes []CachedRoute
	var fltrs []filters.RequestFilter
	for _, service := range services {
		for composite, route := range service.GetRoutes() {
			parts := strings.SplitN(composite, ":", 2)
			cachedRoute := CachedRoute{
				Method: parts[0],
				Path:   parts[1],
				Route:  route,
				Matcher: &CachedMatcher{
					Mutex: &sync.Mutex{},
				},
			}
			routes = append(routes, cachedRoute)
		}
	}
	sort.SliceStable(routes, func(i, j int) bool {
		left, right := routes[i].paramCount(), routes[j].paramCount()
		if left != right {
			return left < right
		}
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	fltrs = append(fltrs, filters.DefaultCorsFilter())
	fltrs = append(fltrs, filters.DefaultIdentityFilter(secret))
	return &Router{
		Routes:  routes,
		Filters: fltrs,
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func translateError(err error) events.APIGatewayV2HTTPResponse {
	statusCode := 500
	payload := errorBody{Error: "Internal server error"}
	var re exceptions.RequestError
	var se *exceptions.ServiceError
	if errors.As(err, &re) {
		statusCode = re.ToServiceError().StatusCode
		payload.Error = re.Error()
	} else if errors.As(err, &se) {
		statusCode = se.StatusCode
		payload.Error = se.Error()
	}
	var ve *exceptions.ValidationError
	if errors.As(err, &ve) {
		payload.Fields = ve.Fields
	}
	if statusCode >= 500 {
		logger.Error("Request failed", zap.Error(err))
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{
		"Content-Type":   "application/json",
		"Content-Length": strconv.Itoa(len(body)),
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    headers,
	}
}

func (r *Router) Invoke(event events.APIGatewayV2HTTPRequest, ctx context.Context) events.APIGatewayV2HTTPResponse {
	filterContext := filters.DefaultFilterContext(event, ctx)
	for _, filter := range r.Filters {
		updatedContext, broken := filter.Filter(filterContext)
		if broken {
			return *updatedContext.Response
		}
		filterContext = updatedContext
	}
	for _, route := range r.Routes {
		if params, ok := route.MatchEvent(*filterContext.Request); ok {
			resp, err := route.Route(event, WithParams(*filterContext.Context, params))
			if err != nil {
				return translateError(err)
			}
			return resp
		}
	}
	return translateError(exceptions.NotFound("route", event.RawPath))
}
