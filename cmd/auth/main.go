package main

import (
	"context"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/auth"
	"philcali.me/mealplanner/internal/config"
	"philcali.me/mealplanner/internal/logger"
)

type Authorizer struct {
	Secret []byte
}

func (a *Authorizer) HandleRequest(ctx context.Context, event events.APIGatewayV2CustomAuthorizerV2Request) (events.APIGatewayV2CustomAuthorizerSimpleResponse, error) {
	defer logger.Close()
	response := events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: false,
	}
	tokenString, err := auth.FromHeader(event.Headers["authorization"])
	if err != nil {
		return response, nil
	}
	identity, err := auth.Verify(tokenString, a.Secret)
	if err != nil {
		logger.Info("Rejected bearer token", zap.String("routeKey", event.RouteKey), zap.Error(err))
		return response, nil
	}
	return events.APIGatewayV2CustomAuthorizerSimpleResponse{
		IsAuthorized: true,
		Context: map[string]interface{}{
			auth.CLAIM_USER_ID:  strconv.FormatInt(identity.UserId, 10),
			auth.CLAIM_USERNAME: identity.Username,
		},
	}, nil
}

func main() {
	conf := config.Load()
	logger.InitializeLogger(conf.IsProduction())
	if len(conf.JwtSecret) == 0 {
		logger.Logger.Fatal("JWT_SECRET is required")
	}
	authorizer := &Authorizer{Secret: conf.JwtSecret}
	lambda.Start(authorizer.HandleRequest)
}
