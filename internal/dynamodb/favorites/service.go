package favorites

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/dynamodb/token"
	"philcali.me/mealplanner/internal/exceptions"
)

const NAME = "Favorite"

type FavoriteDynamoDBService struct {
	DynamoDB       *dynamodb.Client
	TableName      string
	FirstIndex     string
	SecondIndex    string
	TokenMarshaler token.TokenMarshaler
	Sequence       *services.Sequence
}

func NewFavoriteService(tableName string, firstIndex string, secondIndex string, client *dynamodb.Client, marshaler token.TokenMarshaler, sequence *services.Sequence) data.FavoriteRepository {
	return &FavoriteDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		FirstIndex:     firstIndex,
		SecondIndex:    secondIndex,
		TokenMarshaler: marshaler,
		Sequence:       sequence,
	}
}

func pairId(userId int64, recipeId int64) string {
	return fmt.Sprintf("%d:%d", userId, recipeId)
}

func (fs *FavoriteDynamoDBService) Add(ctx context.Context, userId int64, recipeId int64) (data.FavoriteDTO, error) {
	id, err := fs.Sequence.Next(ctx, NAME)
	if err != nil {
		return data.FavoriteDTO{}, err
	}
	// GS2 orders a user's favorites by the sequence id, which grows with time.
	shim := data.FavoriteDTO{
		PK:          services.PrimaryKey(userId, NAME),
		SK:          services.FormatId(recipeId),
		FirstIndex:  services.ChildKey("Recipe", recipeId, NAME),
		FirstSort:   services.FormatId(userId),
		SecondIndex: services.PrimaryKey(userId, NAME),
		SecondSort:  services.FormatId(id),
		Id:          id,
		UserId:      userId,
		RecipeId:    recipeId,
		CreateTime:  time.Now(),
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(services.NotExists()).Build()
	if err != nil {
		return shim, err
	}
	_, err = fs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(fs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return shim, exceptions.Conflict("favorite", pairId(userId, recipeId))
	}
	return shim, err
}

func (fs *FavoriteDynamoDBService) Remove(ctx context.Context, userId int64, recipeId int64) error {
	key, err := services.Key(services.PrimaryKey(userId, NAME), services.FormatId(recipeId))
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(services.Exists()).Build()
	if err != nil {
		return err
	}
	_, err = fs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:                      key,
		TableName:                aws.String(fs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return exceptions.NotFound("favorite", pairId(userId, recipeId))
	}
	return err
}

func (fs *FavoriteDynamoDBService) Exists(ctx context.Context, userId int64, recipeId int64) (bool, error) {
	key, err := services.Key(services.PrimaryKey(userId, NAME), services.FormatId(recipeId))
	if err != nil {
		return false, err
	}
	response, err := fs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(fs.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	return response.Item != nil, nil
}

func (fs *FavoriteDynamoDBService) List(ctx context.Context, userId int64, params data.QueryParams) (data.QueryResults[data.FavoriteDTO], error) {
	input, err := services.IndexQuery(fs.TableName, fs.SecondIndex, services.SECOND_INDEX_HASH, services.PrimaryKey(userId, NAME), true, nil)
	if err != nil {
		return data.QueryResults[data.FavoriteDTO]{}, err
	}
	return services.QueryPage[data.FavoriteDTO](ctx, fs.DynamoDB, fs.TokenMarshaler, services.Scope(userId, NAME), input, params)
}

func (fs *FavoriteDynamoDBService) ListByRecipe(ctx context.Context, recipeId int64) ([]data.FavoriteDTO, error) {
	input, err := services.IndexQuery(fs.TableName, fs.FirstIndex, services.FIRST_INDEX_HASH, services.ChildKey("Recipe", recipeId, NAME), false, nil)
	if err != nil {
		return nil, err
	}
	return services.QueryAll[data.FavoriteDTO](ctx, fs.DynamoDB, input)
}

func (fs *FavoriteDynamoDBService) Count(ctx context.Context, userId int64) (int, error) {
	input, err := services.PartitionQuery(fs.TableName, services.PrimaryKey(userId, NAME), false)
	if err != nil {
		return 0, err
	}
	return services.QueryCount(ctx, fs.DynamoDB, input)
}
