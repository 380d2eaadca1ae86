package cookbook

import (
	"context"

	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/notifications"
)

func (s *Service) ListSubscriptions(ctx context.Context, requester int64, params data.QueryParams) (data.QueryResults[data.SubscriptionDTO], error) {
	if err := requireUser(requester); err != nil {
		return data.QueryResults[data.SubscriptionDTO]{}, err
	}
	return s.Subscriptions.List(ctx, requester, params)
}

// Subscribe registers an email endpoint that receives the requester's review
// notifications.
func (s *Service) Subscribe(ctx context.Context, requester int64, input data.SubscriptionInputDTO) (data.SubscriptionDTO, error) {
	if err := requireUser(requester); err != nil {
		return data.SubscriptionDTO{}, err
	}
	if err := input.Validate(); err != nil {
		return data.SubscriptionDTO{}, err
	}
	protocol := notifications.PROTOCOL_EMAIL
	output, err := s.Notifications.Subscribe(ctx, notifications.SubscribeInput{
		UserId:   requester,
		Endpoint: *input.Endpoint,
		Protocol: protocol,
	})
	if err != nil {
		return data.SubscriptionDTO{}, err
	}
	input.Protocol = &protocol
	input.SubscriberArn = &output.SubscriberId
	return s.Subscriptions.Create(ctx, requester, input)
}

func (s *Service) Unsubscribe(ctx context.Context, requester int64, subscriptionId int64) error {
	if err := requireUser(requester); err != nil {
		return err
	}
	subscription, err := s.Subscriptions.Get(ctx, requester, subscriptionId)
	if err != nil {
		return err
	}
	return s.deleteSubscription(ctx, requester, subscription)
}

func (s *Service) deleteSubscription(ctx context.Context, requester int64, subscription data.SubscriptionDTO) error {
	if err := s.Notifications.Unsubscribe(ctx, subscription.SubscriberArn); err != nil {
		return err
	}
	return s.Subscriptions.Delete(ctx, requester, subscription.Id)
}
