package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/auth"
	"philcali.me/mealplanner/internal/exceptions"
	"philcali.me/mealplanner/internal/routes/filters"
)

type echoService struct{}

func echo(name string) Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		body := name
		for key, value := range Params(ctx) {
			body += fmt.Sprintf(" %s=%s", key, value)
		}
		if identity, ok := filters.IdentityFromContext(ctx); ok {
			body += fmt.Sprintf(" user=%d", identity.UserId)
		}
		return events.APIGatewayV2HTTPResponse{StatusCode: 200, Body: body}, nil
	}
}

func fail(err error) Route {
	return func(event events.APIGatewayV2HTTPRequest, ctx context.Context) (events.APIGatewayV2HTTPResponse, error) {
		return events.APIGatewayV2HTTPResponse{}, err
	}
}

func (es *echoService) GetRoutes() map[string]Route {
	verr := exceptions.Validation()
	verr.Add("title", "is required")
	return map[string]Route{
		"GET:/recipes/:id":                     echo("get"),
		"GET:/recipes/shared":                  echo("shared"),
		"DELETE:/meal-plans/:id/items/:itemId": echo("remove"),
		"POST:/invalid":                        fail(verr),
		"POST:/conflict":                       fail(exceptions.Conflict("item", "1")),
		"POST:/broken":                         fail(fmt.Errorf("table is gone")),
	}
}

func request(method string, path string) events.APIGatewayV2HTTPRequest {
	event := events.APIGatewayV2HTTPRequest{RawPath: path}
	event.RequestContext.HTTP.Method = method
	return event
}

func TestRouter(t *testing.T) {
	secret := []byte("secret")
	router := NewRouter(secret, &echoService{})

	t.Run("LiteralBeforeParameter", func(t *testing.T) {
		resp := router.Invoke(request("GET", "/recipes/shared"), context.TODO())
		if resp.Body != "shared" {
			t.Fatalf("Expected the literal route, got %s", resp.Body)
		}
		resp = router.Invoke(request("GET", "/recipes/12"), context.TODO())
		if resp.Body != "get id=12" {
			t.Fatalf("Expected the parameter route, got %s", resp.Body)
		}
	})

	t.Run("MultipleParameters", func(t *testing.T) {
		resp := router.Invoke(request("DELETE", "/meal-plans/3/items/9"), context.TODO())
		if resp.Body != "remove id=3 itemId=9" && resp.Body != "remove itemId=9 id=3" {
			t.Fatalf("Unexpected params %s", resp.Body)
		}
	})

	t.Run("MethodMismatch", func(t *testing.T) {
		resp := router.Invoke(request("POST", "/recipes/12"), context.TODO())
		if resp.StatusCode != 404 {
			t.Fatalf("Expected 404, got %d", resp.StatusCode)
		}
	})

	t.Run("ErrorBodies", func(t *testing.T) {
		for path, status := range map[string]int{"/invalid": 400, "/conflict": 409, "/broken": 500} {
			resp := router.Invoke(request("POST", path), context.TODO())
			if resp.StatusCode != status {
				t.Fatalf("Expected %d for %s, got %d", status, path, resp.StatusCode)
			}
			var payload errorBody
			if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
				t.Fatalf("Failed to parse error body %s: %s", resp.Body, err)
			}
			switch path {
			case "/invalid":
				if payload.Fields["title"] != "is required" {
					t.Fatalf("Expected field errors, got %v", payload)
				}
			case "/broken":
				if payload.Error != "Internal server error" {
					t.Fatalf("Leaked an internal error: %s", payload.Error)
				}
			}
		}
	})

	t.Run("LambdaAuthorizerIdentity", func(t *testing.T) {
		event := request("GET", "/recipes/shared")
		event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
			Lambda: map[string]interface{}{auth.CLAIM_USER_ID: "42"},
		}
		resp := router.Invoke(event, context.TODO())
		if resp.Body != "shared user=42" {
			t.Fatalf("Expected the authorizer identity, got %s", resp.Body)
		}
	})

	t.Run("NumericAuthorizerIdentity", func(t *testing.T) {
		for value, expected := range map[float64]string{9: "shared user=9", 1.5: "shared", -3: "shared"} {
			event := request("GET", "/recipes/shared")
			event.RequestContext.Authorizer = &events.APIGatewayV2HTTPRequestContextAuthorizerDescription{
				Lambda: map[string]interface{}{auth.CLAIM_USER_ID: value},
			}
			if resp := router.Invoke(event, context.TODO()); resp.Body != expected {
				t.Fatalf("Expected %q for a user id of %v, got %q", expected, value, resp.Body)
			}
		}
	})

	t.Run("BearerIdentity", func(t *testing.T) {
		token, err := auth.Issue(auth.Identity{UserId: 7, Username: "cook"}, secret, time.Minute)
		if err != nil {
			t.Fatalf("Failed to issue token: %s", err)
		}
		event := request("GET", "/recipes/shared")
		event.Headers = map[string]string{"authorization": auth.BEARER_PREFIX + token}
		if resp := router.Invoke(event, context.TODO()); resp.Body != "shared user=7" {
			t.Fatalf("Expected the bearer identity, got %s", resp.Body)
		}
		forged, _ := auth.Issue(auth.Identity{UserId: 7}, []byte("other"), time.Minute)
		event.Headers = map[string]string{"authorization": auth.BEARER_PREFIX + forged}
		if resp := router.Invoke(event, context.TODO()); resp.Body != "shared" {
			t.Fatalf("Expected a forged token to stay anonymous, got %s", resp.Body)
		}
	})
}
