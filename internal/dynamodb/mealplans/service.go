package mealplans

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

const (
	NAME      = "MealPlan"
	ITEM_NAME = "MealPlanItem"
)

type MealPlanDynamoDBService struct {
	*services.RepositoryDynamoDBService[data.MealPlanDTO, data.MealPlanInputDTO]
	FirstIndex string
}

func NewMealPlanService(tableName string, firstIndex string, client *dynamodb.Client, marshaler token.TokenMarshaler, sequence *services.Sequence) data.MealPlanRepository {
	return &MealPlanDynamoDBService{
		FirstIndex: firstIndex,
		RepositoryDynamoDBService: &services.RepositoryDynamoDBService[data.MealPlanDTO, data.MealPlanInputDTO]{
			DynamoDB:       client,
			TableName:      tableName,
			TokenMarshaler: marshaler,
			Sequence:       sequence,
			Name:           NAME,
			Newest:         true,
			Shim: func(pk, sk string) data.MealPlanDTO {
				return data.MealPlanDTO{PK: pk, SK: sk}
			},
			OnCreate: func(input data.MealPlanInputDTO, now time.Time, pk, sk string, id, owner int64) data.MealPlanDTO {
				return data.MealPlanDTO{
					PK:         pk,
					SK:         sk,
					Id:         id,
					Owner:      owner,
					Name:       *input.Name,
					CreateTime: now,
					UpdateTime: now,
				}
			},
			OnUpdate: func(input data.MealPlanInputDTO, update expression.UpdateBuilder) expression.UpdateBuilder {
				if input.Name != nil {
					update = update.Set(expression.Name("name"), expression.Value(*input.Name))
				}
				return update
			},
		},
	}
}

func itemPartition(mealPlanId int64) string {
	return services.ChildKey(NAME, mealPlanId, "Item")
}

// The slot is the sort key, so a plan holds at most one recipe per date and
// meal type, and a partition query returns items in (date, type) order.
func itemSlot(mealDate string, mealType data.MealType) string {
	return fmt.Sprintf("%s#%s", mealDate, mealType)
}

func recipePartition(recipeId int64) string {
	return services.ChildKey("Recipe", recipeId, ITEM_NAME)
}

func (ms *MealPlanDynamoDBService) AddItem(ctx context.Context, mealPlanId int64, input data.MealPlanItemInputDTO) (data.MealPlanItemDTO, error) {
	id, err := ms.Sequence.Next(ctx, ITEM_NAME)
	if err != nil {
		return data.MealPlanItemDTO{}, err
	}
	slot := itemSlot(*input.MealDate, *input.MealType)
	shim := data.MealPlanItemDTO{
		PK:         itemPartition(mealPlanId),
		SK:         slot,
		FirstIndex: recipePartition(*input.RecipeId),
		FirstSort:  fmt.Sprintf("%s#%s", services.FormatId(mealPlanId), slot),
		Id:         id,
		MealPlanId: mealPlanId,
		RecipeId:   *input.RecipeId,
		MealDate:   *input.MealDate,
		MealType:   *input.MealType,
		CreateTime: time.Now(),
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(services.NotExists()).Build()
	if err != nil {
		return shim, err
	}
	_, err = ms.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(ms.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return shim, exceptions.Conflict("meal plan item", fmt.Sprintf("%d:%s", mealPlanId, slot))
	}
	return shim, err
}

func (ms *MealPlanDynamoDBService) ListItems(ctx context.Context, mealPlanId int64) ([]data.MealPlanItemDTO, error) {
	input, err := services.PartitionQuery(ms.TableName, itemPartition(mealPlanId), false)
	if err != nil {
		return nil, err
	}
	input.ConsistentRead = aws.Bool(true)
	return services.QueryAll[data.MealPlanItemDTO](ctx, ms.DynamoDB, input)
}

func (ms *MealPlanDynamoDBService) DeleteItem(ctx context.Context, item data.MealPlanItemDTO) error {
	key, err := services.Key(item.PK, item.SK)
	if err != nil {
		return err
	}
	_, err = ms.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(ms.TableName),
	})
	return err
}

func (ms *MealPlanDynamoDBService) ListItemsByRecipe(ctx context.Context, recipeId int64) ([]data.MealPlanItemDTO, error) {
	input, err := services.IndexQuery(ms.TableName, ms.FirstIndex, services.FIRST_INDEX_HASH, recipePartition(recipeId), false, nil)
	if err != nil {
		return nil, err
	}
	return services.QueryAll[data.MealPlanItemDTO](ctx, ms.DynamoDB, input)
}
