package main

import (
	"context"

	lambdaEvents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/config"
	"philcali.me/mealplanner/internal/events"
	"philcali.me/mealplanner/internal/logger"
	"philcali.me/mealplanner/internal/sns/services"
)

type Handler struct {
	Handlers []events.EventFilter
}

func NewHandler() Handler {
	conf := config.Load()
	logger.InitializeLogger(conf.IsProduction())
	cfg, err := awsConfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Logger.Fatal("Failed to load AWS config", zap.Error(err))
	}
	notifier := services.NewNotificationService(sns.NewFromConfig(cfg), conf.TopicArn)
	return Handler{
		Handlers: []events.EventFilter{
			events.DefaultReviewNotificationHandler(notifier),
		},
	}
}

func (h *Handler) HandleRequest(ctx context.Context, event lambdaEvents.DynamoDBEvent) error {
	defer logger.Close()
	if failures := events.Dispatch(ctx, h.Handlers, event.Records); failures > 0 {
		logger.Warn("Some stream records were not handled", zap.Int("failures", failures), zap.Int("records", len(event.Records)))
	}
	return nil
}

func main() {
	handler := NewHandler()
	lambda.Start(handler.HandleRequest)
}
