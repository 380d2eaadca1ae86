package subscriptions

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/dynamodb/services"
	"philcali.me/mealplanner/internal/dynamodb/token"
)

const NAME = "Subscription"

func NewSubscriptionDynamoDBService(tableName string, client *dynamodb.Client, marshaler token.TokenMarshaler, sequence *services.Sequence) data.SubscriptionRepository {
	return &services.RepositoryDynamoDBService[data.SubscriptionDTO, data.SubscriptionInputDTO]{
		DynamoDB:       client,
		TableName:      tableName,
		TokenMarshaler: marshaler,
		Sequence:       sequence,
		Name:           NAME,
		Shim: func(pk, sk string) data.SubscriptionDTO {
			return data.SubscriptionDTO{PK: pk, SK: sk}
		},
		OnCreate: func(input data.SubscriptionInputDTO, now time.Time, pk, sk string, id, owner int64) data.SubscriptionDTO {
			return data.SubscriptionDTO{
				PK:            pk,
				SK:            sk,
				Id:            id,
				Endpoint:      *input.Endpoint,
				Protocol:      *input.Protocol,
				SubscriberArn: *input.SubscriberArn,
				CreateTime:    now,
				UpdateTime:    now,
			}
		},
	}
}
