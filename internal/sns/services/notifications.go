package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"philcali.me/mealplanner/internal/notifications"
)

const USER_ATTRIBUTE = "userId"

type NotificationSNSService struct {
	Sns      *sns.Client
	TopicArn string
}

func NewNotificationService(client *sns.Client, topicArn string) notifications.NotificationService {
	return &NotificationSNSService{
		Sns:      client,
		TopicArn: topicArn,
	}
}

// Subscriptions only receive messages published for their own user.
func filterPolicy(userId int64) (string, error) {
	policy, err := json.Marshal(map[string][]string{
		USER_ATTRIBUTE: {strconv.FormatInt(userId, 10)},
	})
	return string(policy), err
}

func (n *NotificationSNSService) Subscribe(ctx context.Context, input notifications.SubscribeInput) (*notifications.SubscribeOutput, error) {
	policy, err := filterPolicy(input.UserId)
	if err != nil {
		return nil, err
	}
	output, err := n.Sns.Subscribe(ctx, &sns.SubscribeInput{
		Endpoint:              aws.String(input.Endpoint),
		Protocol:              aws.String(input.Protocol),
		TopicArn:              aws.String(n.TopicArn),
		ReturnSubscriptionArn: true,
		Attributes: map[string]string{
			"FilterPolicy": policy,
		},
	})
	if err != nil {
		return nil, err
	}
	return &notifications.SubscribeOutput{
		SubscriberId: *output.SubscriptionArn,
	}, nil
}

func (n *NotificationSNSService) Unsubscribe(ctx context.Context, subscriberId string) error {
	_, err := n.Sns.Unsubscribe(ctx, &sns.UnsubscribeInput{
		SubscriptionArn: aws.String(subscriberId),
	})
	return err
}

func (n *NotificationSNSService) Publish(ctx context.Context, input notifications.PublishInput) error {
	_, err := n.Sns.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.TopicArn),
		Subject:  aws.String(input.Subject),
		Message:  aws.String(input.Message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			USER_ATTRIBUTE: {
				DataType:    aws.String("String"),
				StringValue: aws.String(strconv.FormatInt(input.UserId, 10)),
			},
		},
	})
	return err
}
