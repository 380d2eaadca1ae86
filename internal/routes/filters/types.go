package filters

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/auth"
	"philcali.me/mealplanner/internal/logger"
)

type FilterContext struct {
	Request  *events.APIGatewayV2HTTPRequest
	Response *events.APIGatewayV2HTTPResponse
	Context  *context.Context
}

type RequestFilter interface {
	Filter(ctx *FilterContext) (*FilterContext, bool)
}

type CorsFilter struct {
	Methods []string
	Origins []string
	Headers []string
}

func (cf *CorsFilter) Filter(ctx *FilterContext) (*FilterContext, bool) {
	if ctx.Request.RequestContext.HTTP.Method == "OPTIONS" {
		headers := ctx.Response.Headers
		if headers == nil {
			headers = make(map[string]string, 4)
		}
		headers["content-length"] = "0"
		headers["access-control-allow-headers"] = strings.Join(cf.Headers, ", ")
		headers["access-control-allow-methods"] = strings.Join(cf.Methods, ", ")
		headers["access-control-allow-origin"] = strings.Join(cf.Origins, ", ")
		return &FilterContext{
			Request: ctx.Request,
			Context: ctx.Context,
			Response: &events.APIGatewayV2HTTPResponse{
				Headers:    headers,
				StatusCode: ctx.Response.StatusCode,
			},
		}, true
	}
	return ctx, false
}

type identityKey struct{}

// WithIdentity attaches the authenticated caller to ctx.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the caller attached by the IdentityFilter, if any.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(auth.Identity)
	return identity, ok
}

// IdentityFilter resolves who is calling. The Lambda authorizer context wins,
// then JWT authorizer claims, then a bearer token verified with Secret. The
// filter never rejects a request: routes that need a user say so themselves,
// so public routes still learn who is asking when a token is present.
type IdentityFilter struct {
	UserField     string
	UsernameField string
	Secret        []byte
}

func toUserId(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) || v <= 0 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	}
	return 0, false
}

func (f *IdentityFilter) fromFields(fields map[string]interface{}) (auth.Identity, bool) {
	value, ok := fields[f.UserField]
	if !ok {
		return auth.Identity{}, false
	}
	userId, ok := toUserId(value)
	if !ok {
		return auth.Identity{}, false
	}
	identity := auth.Identity{UserId: userId}
	if username, ok := fields[f.UsernameField]; ok {
		identity.Username = fmt.Sprintf("%v", username)
	}
	return identity, true
}

func (f *IdentityFilter) resolve(request *events.APIGatewayV2HTTPRequest) (auth.Identity, bool) {
	authorizer := request.RequestContext.Authorizer
	if authorizer != nil {
		if identity, ok := f.fromFields(authorizer.Lambda); ok {
			return identity, true
		}
		if authorizer.JWT != nil {
			claims := make(map[string]interface{}, len(authorizer.JWT.Claims))
			for name, value := range authorizer.JWT.Claims {
				claims[name] = value
			}
			if identity, ok := f.fromFields(claims); ok {
				return identity, true
			}
		}
	}
	if len(f.Secret) == 0 {
		return auth.Identity{}, false
	}
	header := request.Headers["authorization"]
	if header == "" {
		header = request.Headers["Authorization"]
	}
	token, err := auth.FromHeader(header)
	if err != nil {
		return auth.Identity{}, false
	}
	identity, err := auth.Verify(token, f.Secret)
	if err != nil {
		logger.Debug("Ignoring invalid bearer token", zap.Error(err))
		return auth.Identity{}, false
	}
	return *identity, true
}

func (f *IdentityFilter) Filter(ctx *FilterContext) (*FilterContext, bool) {
	identity, ok := f.resolve(ctx.Request)
	if !ok {
		return ctx, false
	}
	withIdentity := WithIdentity(*ctx.Context, identity)
	return &FilterContext{
		Request:  ctx.Request,
		Response: ctx.Response,
		Context:  &withIdentity,
	}, false
}

func DefaultFilterContext(event events.APIGatewayV2HTTPRequest, ctx context.Context) *FilterContext {
	return &FilterContext{
		Request: &event,
		Response: &events.APIGatewayV2HTTPResponse{
			StatusCode: 200,
		},
		Context: &ctx,
	}
}

func DefaultCorsFilter() *CorsFilter {
	methods := [5]string{"GET", "PUT", "PATCH", "POST", "DELETE"}
	headers := [3]string{"Content-Type", "Content-Length", "Authorization"}
	origins := [1]string{"*"}
	return &CorsFilter{
		Methods: methods[:],
		Headers: headers[:],
		Origins: origins[:],
	}
}

func DefaultIdentityFilter(secret []byte) *IdentityFilter {
	return &IdentityFilter{
		UserField:     auth.CLAIM_USER_ID,
		UsernameField: auth.CLAIM_USERNAME,
		Secret:        secret,
	}
}
