package main

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/auth"
)

func TestAuthorizer(t *testing.T) {
	secret := []byte("test-secret")
	authorizer := &Authorizer{Secret: secret}

	t.Run("ValidToken", func(t *testing.T) {
		signed, err := auth.Issue(auth.Identity{UserId: 42, Username: "cook"}, secret, time.Minute)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}
		resp, err := authorizer.HandleRequest(context.TODO(), events.APIGatewayV2CustomAuthorizerV2Request{
			Headers: map[string]string{"authorization": auth.BEARER_PREFIX + signed},
		})
		if err != nil || !resp.IsAuthorized {
			t.Fatalf("Expected the token to be authorized: %v %v", resp, err)
		}
		if resp.Context[auth.CLAIM_USER_ID] != "42" || resp.Context[auth.CLAIM_USERNAME] != "cook" {
			t.Fatalf("Unexpected context %v", resp.Context)
		}
	})

	t.Run("WrongSecret", func(t *testing.T) {
		signed, _ := auth.Issue(auth.Identity{UserId: 42}, []byte("other"), time.Minute)
		resp, _ := authorizer.HandleRequest(context.TODO(), events.APIGatewayV2CustomAuthorizerV2Request{
			Headers: map[string]string{"authorization": auth.BEARER_PREFIX + signed},
		})
		if resp.IsAuthorized {
			t.Fatalf("Expected a foreign signature to be rejected")
		}
	})

	t.Run("MissingHeader", func(t *testing.T) {
		resp, _ := authorizer.HandleRequest(context.TODO(), events.APIGatewayV2CustomAuthorizerV2Request{})
		if resp.IsAuthorized {
			t.Fatalf("Expected a missing header to be rejected")
		}
	})
}
