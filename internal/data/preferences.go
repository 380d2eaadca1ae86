package data

import (
	"context"
	"time"
)

type DietaryPreferenceDTO struct {
	PK                 string    `dynamodbav:"PK"`
	SK                 string    `dynamodbav:"SK"`
	UserId             int64     `dynamodbav:"userId"`
	Vegan              bool      `dynamodbav:"vegan"`
	Vegetarian         bool      `dynamodbav:"vegetarian"`
	GlutenFree         bool      `dynamodbav:"glutenFree"`
	NutAllergy         bool      `dynamodbav:"nutAllergy"`
	DairyFree          bool      `dynamodbav:"dairyFree"`
	LowCarb            bool      `dynamodbav:"lowCarb"`
	CustomRestrictions *string   `dynamodbav:"customRestrictions"`
	CreateTime         time.Time `dynamodbav:"createTime"`
	UpdateTime         time.Time `dynamodbav:"updateTime"`
}

type DietaryPreferenceInputDTO struct {
	Vegan              *bool   `dynamodbav:"vegan"`
	Vegetarian         *bool   `dynamodbav:"vegetarian"`
	GlutenFree         *bool   `dynamodbav:"glutenFree"`
	NutAllergy         *bool   `dynamodbav:"nutAllergy"`
	DairyFree          *bool   `dynamodbav:"dairyFree"`
	LowCarb            *bool   `dynamodbav:"lowCarb"`
	CustomRestrictions *string `dynamodbav:"customRestrictions"`
}

type DietaryPreferenceRepository interface {
	// GetOrCreate returns the preferences of userId, initializing them with
	// every flag off on first access.
	GetOrCreate(ctx context.Context, userId int64) (DietaryPreferenceDTO, error)
	// Put replaces the preferences of userId, creating the row when missing.
	// Omitted flags are stored as false and omitted restrictions are cleared.
	Put(ctx context.Context, userId int64, input DietaryPreferenceInputDTO) (DietaryPreferenceDTO, error)
	Delete(ctx context.Context, userId int64) error
}
