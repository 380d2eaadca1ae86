package subscriptions

import (
	"time"

	"philcali.me/mealplanner/internal/data"
)

type Subscription struct {
	Id        int64     `json:"id"`
	Endpoint  string    `json:"endpoint"`
	Protocol  string    `json:"protocol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubscriptionInput struct {
	Endpoint *string `json:"endpoint"`
}

func (s *SubscriptionInput) toData() data.SubscriptionInputDTO {
	return data.SubscriptionInputDTO{
		Endpoint: s.Endpoint,
	}
}

func NewSubscription(entry data.SubscriptionDTO) Subscription {
	return Subscription{
		Id:        entry.Id,
		Endpoint:  entry.Endpoint,
		Protocol:  entry.Protocol,
		CreatedAt: entry.CreateTime,
		UpdatedAt: entry.UpdateTime,
	}
}
