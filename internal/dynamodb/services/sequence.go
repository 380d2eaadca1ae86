package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Sequence hands out increasing ids per entity name from one counter row
// each. Ids that were handed out but never written leave gaps.
type Sequence struct {
	DynamoDB  *dynamodb.Client
	TableName string
}

func NewSequence(tableName string, client *dynamodb.Client) *Sequence {
	return &Sequence{
		DynamoDB:  client,
		TableName: tableName,
	}
}

func (s *Sequence) Next(ctx context.Context, name string) (int64, error) {
	return s.Reserve(ctx, name, 1)
}

// Reserve claims count consecutive ids and returns the last of them.
func (s *Sequence) Reserve(ctx context.Context, name string, count int) (int64, error) {
	key, err := Key(GlobalKey("Sequence"), name)
	if err != nil {
		return 0, err
	}
	update := expression.Add(expression.Name("value"), expression.Value(count))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return 0, err
	}
	output, err := s.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.TableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	var counter struct {
		Value int64 `dynamodbav:"value"`
	}
	if err := attributevalue.UnmarshalMap(output.Attributes, &counter); err != nil {
		return 0, err
	}
	if counter.Value < int64(count) {
		return 0, fmt.Errorf("sequence %s returned %d", name, counter.Value)
	}
	return counter.Value, nil
}
