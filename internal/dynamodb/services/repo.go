package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/token"
	"philcali.me/mealplanner/internal/exceptions"
)

// Site wide partition prefix for rows addressed by id alone.
const GLOBAL_ACCOUNT = "Global"

const (
	FIRST_INDEX_HASH   = "GS1-PK"
	FIRST_INDEX_RANGE  = "GS1-SK"
	SECOND_INDEX_HASH  = "GS2-PK"
	SECOND_INDEX_RANGE = "GS2-SK"
)

// RepositoryDynamoDBService stores rows of one user under "<owner>:<Name>"
// with the zero padded id as sort key, so listings come back in id order.
type RepositoryDynamoDBService[T interface{}, I interface{}] struct {
	DynamoDB       *dynamodb.Client
	TableName      string
	TokenMarshaler token.TokenMarshaler
	Sequence       *Sequence
	Name           string
	Newest         bool
	Shim           func(pk string, sk string) T
	OnCreate       func(I, time.Time, string, string, int64, int64) T
	OnUpdate       func(I, expression.UpdateBuilder) expression.UpdateBuilder
}

func FormatId(id int64) string {
	return fmt.Sprintf("%016d", id)
}

func ParseId(sk string) (int64, error) {
	return strconv.ParseInt(sk, 10, 64)
}

func PrimaryKey(owner int64, name string) string {
	return fmt.Sprintf("%d:%s", owner, name)
}

func GlobalKey(name string) string {
	return fmt.Sprintf("%s:%s", GLOBAL_ACCOUNT, name)
}

func ChildKey(parent string, parentId int64, name string) string {
	return fmt.Sprintf("%s:%s:%s", parent, FormatId(parentId), name)
}

// Scope binds a next token to one listing of one user.
func Scope(owner int64, listing string) string {
	return fmt.Sprintf("%d:%s", owner, listing)
}

func Key(pks string, sks string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(pks)
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(sks)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func IsConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// NotExists is the condition guarding every insert.
func NotExists() expression.ConditionBuilder {
	return expression.Name("PK").AttributeNotExists().And(expression.Name("SK").AttributeNotExists())
}

// Exists is the condition guarding every update of an existing row.
func Exists() expression.ConditionBuilder {
	return expression.Name("PK").AttributeExists().And(expression.Name("SK").AttributeExists())
}

// QueryPage runs one page of input, resuming and minting next tokens for
// scope. Filtered queries keep reading until the page is full or the
// partition is exhausted, so a page is only short at the end.
func QueryPage[T interface{}](ctx context.Context, client *dynamodb.Client, marshaler token.TokenMarshaler, scope string, input *dynamodb.QueryInput, params data.QueryParams) (data.QueryResults[T], error) {
	startKey, err := marshaler.Unmarshal(scope, params.NextToken)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	limit := *params.GetLimit()
	items := make([]T, 0, limit)
	for {
		input.ExclusiveStartKey = startKey
		input.Limit = aws.Int32(limit - int32(len(items)))
		output, err := client.Query(ctx, input)
		if err != nil {
			return data.QueryResults[T]{}, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return data.QueryResults[T]{}, err
		}
		items = append(items, page...)
		startKey = output.LastEvaluatedKey
		if input.FilterExpression == nil || len(startKey) == 0 || int32(len(items)) >= limit {
			break
		}
	}
	next, err := marshaler.Marshal(scope, startKey)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return data.QueryResults[T]{
		Items:     items,
		NextToken: next,
	}, nil
}

// QueryAll follows LastEvaluatedKey until the query is exhausted.
func QueryAll[T interface{}](ctx context.Context, client *dynamodb.Client, input *dynamodb.QueryInput) ([]T, error) {
	var items []T
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(output.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
	}
	return items, nil
}

// QueryCount counts the rows matching input without reading them.
func QueryCount(ctx context.Context, client *dynamodb.Client, input *dynamodb.QueryInput) (int, error) {
	input.Select = types.SelectCount
	count := 0
	paginator := dynamodb.NewQueryPaginator(client, input)
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, err
		}
		count += int(output.Count)
	}
	return count, nil
}

// PartitionQuery selects every row of one table partition.
func PartitionQuery(tableName string, pk string, newest bool) (*dynamodb.QueryInput, error) {
	return IndexQuery(tableName, "", "PK", pk, newest, nil)
}

// IndexQuery selects every row whose hashName equals pk, narrowed by an
// optional filter. An empty indexName queries the table itself.
func IndexQuery(tableName string, indexName string, hashName string, pk string, newest bool, filter *expression.ConditionBuilder) (*dynamodb.QueryInput, error) {
	keyEx := expression.Key(hashName).Equal(expression.Value(pk))
	builder := expression.NewBuilder().WithKeyCondition(keyEx)
	if filter != nil {
		builder = builder.WithFilter(*filter)
	}
	expr, err := builder.Build()
	if err != nil {
		return nil, err
	}
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(!newest),
	}
	if indexName != "" {
		input.IndexName = aws.String(indexName)
	}
	return input, nil
}

func (rs *RepositoryDynamoDBService[T, I]) resource() string {
	return strings.ToLower(rs.Name)
}

func (rs *RepositoryDynamoDBService[T, I]) List(ctx context.Context, owner int64, params data.QueryParams) (data.QueryResults[T], error) {
	input, err := PartitionQuery(rs.TableName, PrimaryKey(owner, rs.Name), rs.Newest)
	if err != nil {
		return data.QueryResults[T]{}, err
	}
	return QueryPage[T](ctx, rs.DynamoDB, rs.TokenMarshaler, Scope(owner, rs.Name), input, params)
}

func (rs *RepositoryDynamoDBService[T, I]) Count(ctx context.Context, owner int64) (int, error) {
	input, err := PartitionQuery(rs.TableName, PrimaryKey(owner, rs.Name), false)
	if err != nil {
		return 0, err
	}
	return QueryCount(ctx, rs.DynamoDB, input)
}

func (rs *RepositoryDynamoDBService[T, I]) Create(ctx context.Context, owner int64, input I) (T, error) {
	var shim T
	id, err := rs.Sequence.Next(ctx, rs.Name)
	if err != nil {
		return shim, err
	}
	shim = rs.OnCreate(input, time.Now(), PrimaryKey(owner, rs.Name), FormatId(id), id, owner)
	item, err := attributevalue.MarshalMap(shim)
	if err != nil {
		return shim, err
	}
	expr, err := expression.NewBuilder().WithCondition(NotExists()).Build()
	if err != nil {
		return shim, err
	}
	_, err = rs.DynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		Item:                     item,
		TableName:                aws.String(rs.TableName),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil && IsConditionFailed(err) {
		return shim, exceptions.Conflict(rs.resource(), strconv.FormatInt(id, 10))
	}
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Update(ctx context.Context, owner int64, itemId int64, input I) (T, error) {
	pk := PrimaryKey(owner, rs.Name)
	shim := rs.Shim(pk, FormatId(itemId))
	key, err := Key(pk, FormatId(itemId))
	if err != nil {
		return shim, err
	}
	update := expression.Set(expression.Name("updateTime"), expression.Value(time.Now()))
	if rs.OnUpdate != nil {
		update = rs.OnUpdate(input, update)
	}
	expr, err := expression.NewBuilder().WithCondition(Exists()).WithUpdate(update).Build()
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
		if IsConditionFailed(err) {
			return shim, exceptions.NotFound(rs.resource(), strconv.FormatInt(itemId, 10))
		}
		return shim, err
	}
	err = attributevalue.UnmarshalMap(response.Attributes, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Get(ctx context.Context, owner int64, itemId int64) (T, error) {
	pk := PrimaryKey(owner, rs.Name)
	shim := rs.Shim(pk, FormatId(itemId))
	key, err := Key(pk, FormatId(itemId))
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
		return shim, exceptions.NotFound(rs.resource(), strconv.FormatInt(itemId, 10))
	}
	err = attributevalue.UnmarshalMap(response.Item, &shim)
	return shim, err
}

func (rs *RepositoryDynamoDBService[T, I]) Delete(ctx context.Context, owner int64, itemId int64) error {
	key, err := Key(PrimaryKey(owner, rs.Name), FormatId(itemId))
	if err != nil {
		return err
	}
	_, err = rs.DynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		Key:       key,
		TableName: aws.String(rs.TableName),
	})
	return err
}
