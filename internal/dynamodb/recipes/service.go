package recipes

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/dynamodb/token"
	"philcali.me/mealplanner/internal/exceptions"
)

const (
	NAME          = "Recipe"
	SHARED_SCOPE  = "Shared"
	BATCH_GET_MAX = 100
)

type RecipeDynamoDBService struct {
	DynamoDB       *dynamodb.Client
	TableName      string
	FirstIndex     string
	SecondIndex    string
	TokenMarshaler token.TokenMarshaler
	Sequence       *services.Sequence
}

func NewRecipeService(tableName string, firstIndex string, secondIndex string, client *dynamodb.Client, marshaler token.TokenMarshaler, sequence *services.Sequence) data.RecipeRepository {
	return &RecipeDynamoDBService{
		DynamoDB:       client,
		TableName:      tableName,
		FirstIndex:     firstIndex,
		SecondIndex:    secondIndex,
		TokenMarshaler: marshaler,
		Sequence:       sequence,
	}
}

func searchText(title string, description string) string {
	return strings.ToLower(title + "\n" + description)
}

func sharedKey() string {
	return SHARED_SCOPE + ":" + NAME
}

func recipeKey(recipeId int64) (map[string]types.AttributeValue, error) {
	return services.Key(services.GlobalKey(NAME), services.FormatId(recipeId))
}

func notFound(recipeId int64) error {
	return exceptions.NotFound("recipe", strconv.FormatInt(recipeId, 10))
}

func (rs *RecipeDynamoDBService) Create(ctx context.Context, owner int64, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	id, err := rs.Sequence.Next(ctx, NAME)
	if err != nil {
		return data.RecipeDTO{}, err
	}
	now := time.Now()
	sk := services.FormatId(id)
	dietaryType := data.DIET_NONE
	if input.DietaryType != nil {
		dietaryType = *input.DietaryType
	}
	shim := data.RecipeDTO{
		PK:           services.GlobalKey(NAME),
		SK:           sk,
		FirstIndex:   services.PrimaryKey(owner, NAME),
		FirstSort:    sk,
		Id:           id,
		Owner:        owner,
		Title:        *input.Title,
		Description:  *input.Description,
		Ingredients:  *input.Ingredients,
		Instructions: *input.Instructions,
		Calories:     *input.Calories,
		Protein:      *input.Protein,
		Fat:          *input.Fat,
		Carbs:        *input.Carbs,
		DietaryType:  dietaryType,
		Shared:       input.Shared != nil && *input.Shared,
		SearchText:   searchText(*input.Title, *input.Description),
		CreateTime:   now,
		UpdateTime:   now,
	}
	if shim.Shared {
		shim.SecondIndex = aws.String(sharedKey())
		shim.SecondSort = aws.String(sk)
	}
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(services.NotExists()).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return shim, exceptions.Conflict("recipe", strconv.FormatInt(id, 10))
	}
	return shim, err
}

func (rs *RecipeDynamoDBService) Get(ctx context.Context, recipeId int64) (data.RecipeDTO, error) {
	var shim data.RecipeDTO
	key, err := recipeKey(recipeId)
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
		return shim, notFound(recipeId)
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

// GetMany resolves ids in batches, silently skipping the ones that are gone.
func (rs *RecipeDynamoDBService) GetMany(ctx context.Context, recipeIds []int64) (map[int64]data.RecipeDTO, error) {
	results := make(map[int64]data.RecipeDTO, len(recipeIds))
	seen := make(map[int64]bool, len(recipeIds))
	var keys []map[string]types.AttributeValue
	for _, recipeId := range recipeIds {
		if seen[recipeId] {
			continue
		}
		seen[recipeId] = true
		key, err := recipeKey(recipeId)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	for start := 0; start < len(keys); start += BATCH_GET_MAX {
		end := start + BATCH_GET_MAX
		if end > len(keys) {
			end = len(keys)
		}
		requests := map[string]types.KeysAndAttributes{
			rs.TableName: {Keys: keys[start:end], ConsistentRead: aws.Bool(true)},
		}
		for len(requests) > 0 {
			output, err := rs.DynamoDB.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
				RequestItems: requests,
			})
			if err != nil {
				return nil, err
			}
			var page []data.RecipeDTO
			if err := attributevalue.UnmarshalListOfMaps(output.Responses[rs.TableName], &page); err != nil {
				return nil, err
			}
			for _, recipe := range page {
				results[recipe.Id] = recipe
			}
			requests = output.UnprocessedKeys
		}
	}
	return results, nil
}

func ownedBy(owner int64) expression.ConditionBuilder {
	return services.Exists().And(expression.Name("owner").Equal(expression.Value(owner)))
}

// Update writes the provided fields of a recipe owned by owner. Title and
// description must be provided together so the search text stays current.
func (rs *RecipeDynamoDBService) Update(ctx context.Context, owner int64, recipeId int64, input data.RecipeInputDTO) (data.RecipeDTO, error) {
	var shim data.RecipeDTO
	key, err := recipeKey(recipeId)
	if err != nil {
		return shim, err
	}
	update := expression.Set(expression.Name("updateTime"), expression.Value(time.Now()))
	if input.Title != nil {
		update = update.Set(expression.Name("title"), expression.Value(*input.Title))
	}
	if input.Description != nil {
		update = update.Set(expression.Name("description"), expression.Value(*input.Description))
	}
	if input.Title != nil && input.Description != nil {
		update = update.Set(expression.Name("searchText"), expression.Value(searchText(*input.Title, *input.Description)))
	}
	if input.Ingredients != nil {
		update = update.Set(expression.Name("ingredients"), expression.Value(*input.Ingredients))
	}
	if input.Instructions != nil {
		update = update.Set(expression.Name("instructions"), expression.Value(*input.Instructions))
	}
	if input.Calories != nil {
		update = update.Set(expression.Name("calories"), expression.Value(*input.Calories))
	}
	if input.Protein != nil {
		update = update.Set(expression.Name("protein"), expression.Value(*input.Protein))
	}
	if input.Fat != nil {
		update = update.Set(expression.Name("fat"), expression.Value(*input.Fat))
	}
	if input.Carbs != nil {
		update = update.Set(expression.Name("carbs"), expression.Value(*input.Carbs))
	}
	if input.DietaryType != nil {
		update = update.Set(expression.Name("dietaryType"), expression.Value(*input.DietaryType))
	}
	if input.Shared != nil {
		update = update.Set(expression.Name("shared"), expression.Value(*input.Shared))
		if *input.Shared {
			update = update.
				Set(expression.Name(services.SECOND_INDEX_HASH), expression.Value(sharedKey())).
				Set(expression.Name(services.SECOND_INDEX_RANGE), expression.Value(services.FormatId(recipeId)))
		} else {
			update = update.
				Remove(expression.Name(services.SECOND_INDEX_HASH)).
				Remove(expression.Name(services.SECOND_INDEX_RANGE))
		}
	}
	expr, err := expression.NewBuilder().WithCondition(ownedBy(owner)).WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	response, err := rs.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(rs.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if services.IsConditionFailed(err) {
			return shim, notFound(recipeId)
		}
		return shim, err
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (rs *RecipeDynamoDBService) Delete(ctx context.Context, owner int64, recipeId int64) error {
	key, err := recipeKey(recipeId)
	if err != nil {
		return err
	}
	expr, err := expression.NewBuilder().WithCondition(ownedBy(owner)).Build()
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:                       key,
		TableName:                 aws.String(rs.TableName),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil && services.IsConditionFailed(err) {
		return notFound(recipeId)
	}
	return err
}

func filterCondition(filter data.RecipeFilter) *expression.ConditionBuilder {
	var conditions []expression.ConditionBuilder
	if filter.DietaryType != nil {
		conditions = append(conditions, expression.Name("dietaryType").Equal(expression.Value(*filter.DietaryType)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		term := strings.ToLower(strings.TrimSpace(*filter.Search))
		conditions = append(conditions, expression.Name("searchText").Contains(term))
	}
	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return &conditions[0]
	}
	combined := expression.And(conditions[0], conditions[1], conditions[2:]...)
	return &combined
}

func (rs *RecipeDynamoDBService) ListByOwner(ctx context.Context, owner int64, filter data.RecipeFilter, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	input, err := services.IndexQuery(rs.TableName, rs.FirstIndex, services.FIRST_INDEX_HASH, services.PrimaryKey(owner, NAME), true, filterCondition(filter))
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	return services.QueryPage[data.RecipeDTO](ctx, rs.DynamoDB, rs.TokenMarshaler, services.Scope(owner, NAME), input, params)
}

func (rs *RecipeDynamoDBService) ListShared(ctx context.Context, filter data.RecipeFilter, params data.QueryParams) (data.QueryResults[data.RecipeDTO], error) {
	input, err := services.IndexQuery(rs.TableName, rs.SecondIndex, services.SECOND_INDEX_HASH, sharedKey(), true, filterCondition(filter))
	if err != nil {
		return data.QueryResults[data.RecipeDTO]{}, err
	}
	return services.QueryPage[data.RecipeDTO](ctx, rs.DynamoDB, rs.TokenMarshaler, SHARED_SCOPE, input, params)
}

func (rs *RecipeDynamoDBService) CountByOwner(ctx context.Context, owner int64) (int, error) {
	input, err := services.IndexQuery(rs.TableName, rs.FirstIndex, services.FIRST_INDEX_HASH, services.PrimaryKey(owner, NAME), false, nil)
	if err != nil {
		return 0, err
	}
	return services.QueryCount(ctx, rs.DynamoDB, input)
}
