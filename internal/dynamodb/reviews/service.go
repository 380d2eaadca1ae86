package reviews

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/exceptions"
)

const (
	NAME   = "Review"
	RECIPE = "Recipe"
)

type ReviewDynamoDBService struct {
	DynamoDB   *dynamodb.Client
	TableName  string
	FirstIndex string
	Sequence   *services.Sequence
}

func NewReviewService(tableName string, firstIndex string, client *dynamodb.Client, sequence *services.Sequence) data.ReviewRepository {
	return &ReviewDynamoDBService{
		DynamoDB:   client,
		TableName:  tableName,
		FirstIndex: firstIndex,
		Sequence:   sequence,
	}
}

func reviewKey(recipeId int64, reviewer int64) (map[string]types.AttributeValue, error) {
	return services.Key(services.ChildKey(RECIPE, recipeId, NAME), services.FormatId(reviewer))
}

func notFound(recipeId int64, reviewer int64) error {
	return exceptions.NotFound("review", fmt.Sprintf("%d:%d", recipeId, reviewer))
}

func recipeMissing(err error) bool {
	var canceled *types.TransactionCanceledException
	if !errors.As(err, &canceled) || len(canceled.CancellationReasons) == 0 {
		return false
	}
	return aws.ToString(canceled.CancellationReasons[0].Code) == "ConditionalCheckFailed"
}

// Upsert creates or replaces the review in one transaction that also checks
// the recipe still exists. The id and create time of an existing review
// survive; a fresh id is only consumed by the sequence.
func (rs *ReviewDynamoDBService) Upsert(ctx context.Context, recipe data.RecipeDTO, reviewer int64, input data.ReviewInputDTO) (data.ReviewDTO, error) {
	var shim data.ReviewDTO
	key, err := reviewKey(recipe.Id, reviewer)
	if err != nil {
		return shim, err
	}
	recipeKey, err := services.Key(services.GlobalKey(RECIPE), services.FormatId(recipe.Id))
	if err != nil {
		return shim, err
	}
	id, err := rs.Sequence.Next(ctx, NAME)
	if err != nil {
		return shim, err
	}
	now := time.Now()
	update := expression.Set(expression.Name("updateTime"), expression.Value(now)).
		Set(expression.Name("createTime"), expression.IfNotExists(expression.Name("createTime"), expression.Value(now))).
		Set(expression.Name("id"), expression.IfNotExists(expression.Name("id"), expression.Value(id))).
		Set(expression.Name(services.FIRST_INDEX_HASH), expression.Value(services.PrimaryKey(reviewer, NAME))).
		Set(expression.Name(services.FIRST_INDEX_RANGE), expression.Value(services.FormatId(recipe.Id))).
		Set(expression.Name("recipeId"), expression.Value(recipe.Id)).
		Set(expression.Name("recipeOwner"), expression.Value(recipe.Owner)).
		Set(expression.Name("recipeTitle"), expression.Value(recipe.Title)).
		Set(expression.Name("reviewer"), expression.Value(reviewer)).
		Set(expression.Name("reviewerName"), expression.Value(input.ReviewerName)).
		Set(expression.Name("rating"), expression.Value(*input.Rating))
	if input.Comment != nil && *input.Comment != "" {
		update = update.Set(expression.Name("comment"), expression.Value(*input.Comment))
	} else {
		update = update.Remove(expression.Name("comment"))
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	exists, err := expression.NewBuilder().WithCondition(services.Exists()).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				ConditionCheck: &types.ConditionCheck{
					TableName:                aws.String(rs.TableName),
					Key:                      recipeKey,
					ConditionExpression:      exists.Condition(),
					ExpressionAttributeNames: exists.Names(),
				},
			},
			{
				Update: &types.Update{
					TableName:                 aws.String(rs.TableName),
					Key:                       key,
					ExpressionAttributeNames:  expr.Names(),
					ExpressionAttributeValues: expr.Values(),
					UpdateExpression:          expr.Update(),
				},
			},
		},
	})
	if err != nil {
		if recipeMissing(err) {
			return shim, exceptions.NotFound("recipe", strconv.FormatInt(recipe.Id, 10))
		}
		return shim, err
	}
	return rs.Get(ctx, recipe.Id, reviewer)
}

func (rs *ReviewDynamoDBService) Get(ctx context.Context, recipeId int64, reviewer int64) (data.ReviewDTO, error) {
	var shim data.ReviewDTO
	key, err := reviewKey(recipeId, reviewer)
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(rs.TableName),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return shim, err
	}
	if response.Item == nil {
		return shim, notFound(recipeId, reviewer)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *ReviewDynamoDBService) Delete(ctx context.Context, recipeId int64, reviewer int64) error {
	key, err := reviewKey(recipeId, reviewer)
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(services.Exists()).Build()
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:                      key,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return notFound(recipeId, reviewer)
	}
	return err
}

// ListByRecipe returns every review of a recipe, newest first.
func (rs *ReviewDynamoDBService) ListByRecipe(ctx context.Context, recipeId int64) ([]data.ReviewDTO, error) {
	input, err := services.PartitionQuery(rs.TableName, services.ChildKey(RECIPE, recipeId, NAME), false)
	if err != nil {
		return nil, err
	}
	input.ConsistentRead = aws.Bool(true)
	items, err := services.QueryAll[data.ReviewDTO](ctx, rs.DynamoDB, input)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreateTime.After(items[j].CreateTime)
	})
	return items, nil
}

func (rs *ReviewDynamoDBService) ListByReviewer(ctx context.Context, reviewer int64) ([]data.ReviewDTO, error) {
	input, err := services.IndexQuery(rs.TableName, rs.FirstIndex, services.FIRST_INDEX_HASH, services.PrimaryKey(reviewer, NAME), true, nil)
	if err != nil {
		return nil, err
	}
	return services.QueryAll[data.ReviewDTO](ctx, rs.DynamoDB, input)
}
