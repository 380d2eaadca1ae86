// Package app assembles the DynamoDB backed cookbook and its HTTP router.
package app

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/mealplanner/internal/config"
	"philcali.me/mealplanner/internal/cookbook"
	"philcali.me/mealplanner/internal/dynamodb/favorites"
	"philcali.me/mealplanner/internal/dynamodb/mealplans"
	"philcali.me/mealplanner/internal/dynamodb/preferences"
	"philcali.me/mealplanner/internal/dynamodb/recipes"
	"philcali.me/mealplanner/internal/dynamodb/reviews"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/dynamodb/shopping"
	"philcali.me/mealplanner/internal/dynamodb/subscriptions"
	"philcali.me/mealplanner/internal/dynamodb/token"
	"philcali.me/mealplanner/internal/notifications"
	"philcali.me/mealplanner/internal/routes"
	accountRoutes "philcali.me/mealplanner/internal/routes/account"
	mealPlanRoutes "philcali.me/mealplanner/internal/routes/mealplans"
	preferenceRoutes "philcali.me/mealplanner/internal/routes/preferences"
	recipeRoutes "philcali.me/mealplanner/internal/routes/recipes"
	shoppingRoutes "philcali.me/mealplanner/internal/routes/shopping"
	subscriptionRoutes "philcali.me/mealplanner/internal/routes/subscriptions"
)

func NewCookbook(conf config.Config, client *dynamodb.Client, notifier notifications.NotificationService) *cookbook.Service {
	marshaler := token.NewGCMWithSecret(conf.TokenSecret)
	sequence := services.NewSequence(conf.TableName, client)
	return &cookbook.Service{
		Recipes:       recipes.NewRecipeService(conf.TableName, conf.FirstIndex, conf.SecondIndex, client, marshaler, sequence),
		Favorites:     favorites.NewFavoriteService(conf.TableName, conf.FirstIndex, conf.SecondIndex, client, marshaler, sequence),
		Reviews:       reviews.NewReviewService(conf.TableName, conf.FirstIndex, client, sequence),
		Preferences:   preferences.NewDietaryPreferenceService(conf.TableName, client),
		MealPlans:     mealplans.NewMealPlanService(conf.TableName, conf.FirstIndex, client, marshaler, sequence),
		ShoppingLists: shopping.NewShoppingListService(conf.TableName, conf.FirstIndex, client, marshaler, sequence),
		Subscriptions: subscriptions.NewSubscriptionDynamoDBService(conf.TableName, client, marshaler, sequence),
		Notifications: notifier,
	}
}

func NewRouter(conf config.Config, service *cookbook.Service) *routes.Router {
	return routes.NewRouter(
		conf.JwtSecret,
		recipeRoutes.NewRoute(service),
		mealPlanRoutes.NewRoute(service),
		shoppingRoutes.NewRoute(service),
		preferenceRoutes.NewRoute(service),
		accountRoutes.NewRoute(service),
		subscriptionRoutes.NewRoute(service),
	)
}
