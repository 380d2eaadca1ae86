package notifications

import "context"

const PROTOCOL_EMAIL = "email"

type SubscribeInput struct {
	UserId   int64
	Endpoint string
	Protocol string
}

type SubscribeOutput struct {
	SubscriberId string
}

type PublishInput struct {
	UserId  int64
	Subject string
	Message string
}

// NotificationService delivers messages to the endpoints a user subscribed.
type NotificationService interface {
	Subscribe(ctx context.Context, input SubscribeInput) (*SubscribeOutput, error)
	Unsubscribe(ctx context.Context, subscriberId string) error
	Publish(ctx context.Context, input PublishInput) error
}
