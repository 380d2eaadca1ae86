package data

import (
	"time"
)

type SubscriptionDTO struct {
	PK            string    `dynamodbav:"PK"`
	SK            string    `dynamodbav:"SK"`
	Id            int64     `dynamodbav:"id"`
	Endpoint      string    `dynamodbav:"endpoint"`
	Protocol      string    `dynamodbav:"protocol"`
	SubscriberArn string    `dynamodbav:"subscriberArn"`
	CreateTime    time.Time `dynamodbav:"createTime"`
	UpdateTime    time.Time `dynamodbav:"updateTime"`
}

type SubscriptionInputDTO struct {
	Endpoint      *string `json:"endpoint" dynamodbav:"endpoint" validate:"required,email,max=255"`
	Protocol      *string `json:"-" dynamodbav:"protocol"`
	SubscriberArn *string `json:"-" dynamodbav:"subscriberArn"`
}

type SubscriptionRepository interface {
	Repository[SubscriptionDTO, SubscriptionInputDTO]
}

func (in SubscriptionInputDTO) Validate() error {
	return check(in, false)
}
