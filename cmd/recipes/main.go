package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/app"
	"philcali.me/mealplanner/internal/config"
	"philcali.me/mealplanner/internal/logger"
	"philcali.me/mealplanner/internal/routes"
	"philcali.me/mealplanner/internal/sns/services"
)

type App struct {
	Router routes.Router
}

func NewApp() App {
	conf := config.Load()
	logger.InitializeLogger(conf.IsProduction())
	if err := conf.Validate(); err != nil {
		logger.Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	cfg, err := awsConfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		logger.Logger.Fatal("Failed to load AWS config", zap.Error(err))
	}
	client := dynamodb.NewFromConfig(cfg)
	notifier := services.NewNotificationService(sns.NewFromConfig(cfg), conf.TopicArn)
	router := app.NewRouter(conf, app.NewCookbook(conf, client, notifier))
	logger.Info("Router ready", zap.Int("routes", len(router.Routes)), zap.String("table", conf.TableName))
	return App{
		Router: *router,
	}
}

func (app *App) HandleRequest(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	defer logger.Close()
	return app.Router.Invoke(request, ctx), nil
}

func main() {
	app := NewApp()
	lambda.Start(app.HandleRequest)
}
