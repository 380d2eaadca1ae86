package preferences

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/services"
)

const (
	NAME = "DietaryPreference"
	SORT = services.GLOBAL_ACCOUNT
)

type DietaryPreferenceDynamoDBService struct {
	DynamoDB  *dynamodb.Client
	TableName string
}

func NewDietaryPreferenceService(tableName string, client *dynamodb.Client) data.DietaryPreferenceRepository {
	return &DietaryPreferenceDynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
	}
}

// Both GetOrCreate and Put are one UpdateItem. GetOrCreate initializes
// missing flags with if_not_exists, so the row is created at most once. Put
// replaces every flag, an omitted one is stored as false.
func (ps *DietaryPreferenceDynamoDBService) upsert(ctx context.Context, userId int64, input data.DietaryPreferenceInputDTO, replace bool) (data.DietaryPreferenceDTO, error) {
	var shim data.DietaryPreferenceDTO
	key, err := services.Key(services.PrimaryKey(userId, NAME), SORT)
	if err != nil {
		return shim, err
	}
	now := time.Now()
	update := expression.Set(expression.Name("userId"), expression.Value(userId)).
		Set(expression.Name("createTime"), expression.IfNotExists(expression.Name("createTime"), expression.Value(now)))
	if replace {
		update = update.Set(expression.Name("updateTime"), expression.Value(now))
	} else {
		update = update.Set(expression.Name("updateTime"), expression.IfNotExists(expression.Name("updateTime"), expression.Value(now)))
	}
	flags := []struct {
		name  string
		value *bool
	}{
		{"vegan", input.Vegan},
		{"vegetarian", input.Vegetarian},
		{"glutenFree", input.GlutenFree},
		{"nutAllergy", input.NutAllergy},
		{"dairyFree", input.DairyFree},
		{"lowCarb", input.LowCarb},
	}
	for _, flag := range flags {
		if replace {
			update = update.Set(expression.Name(flag.name), expression.Value(flag.value != nil && *flag.value))
		} else {
			update = update.Set(expression.Name(flag.name), expression.IfNotExists(expression.Name(flag.name), expression.Value(false)))
		}
	}
	if replace {
		if input.CustomRestrictions == nil || *input.CustomRestrictions == "" {
			update = update.Remove(expression.Name("customRestrictions"))
		} else {
			update = update.Set(expression.Name("customRestrictions"), expression.Value(*input.CustomRestrictions))
		}
	}
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return shim, err
	}
	response, err := ps.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ps.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return shim, err
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (ps *DietaryPreferenceDynamoDBService) GetOrCreate(ctx context.Context, userId int64) (data.DietaryPreferenceDTO, error) {
	return ps.upsert(ctx, userId, data.DietaryPreferenceInputDTO{}, false)
}

func (ps *DietaryPreferenceDynamoDBService) Put(ctx context.Context, userId int64, input data.DietaryPreferenceInputDTO) (data.DietaryPreferenceDTO, error) {
	return ps.upsert(ctx, userId, input, true)
}

func (ps *DietaryPreferenceDynamoDBService) Delete(ctx context.Context, userId int64) error {
	key, err := services.Key(services.PrimaryKey(userId, NAME), SORT)
	if err != nil {
		return err
	}
	_, err = ps.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(ps.TableName),
	})
	return err
}
