package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"philcali.me/mealplanner/internal/notifications"
)

const (
	REVIEW_SUBJECT = "New review of %s"
	REVIEW_MESSAGE = "%s rated %s %d/5"
)

// ReviewNotificationHandler tells a recipe owner when someone else reviews
// one of their recipes.
type ReviewNotificationHandler struct {
	Notifications notifications.NotificationService
}

func isReviewKey(pk string) bool {
	parts := strings.Split(pk, ":")
	return len(parts) == 3 && parts[0] == "Recipe" && parts[2] == "Review"
}

func integer(image map[string]events.DynamoDBAttributeValue, name string) (int64, error) {
	value, ok := image[name]
	if !ok || value.DataType() != events.DataTypeNumber {
		return 0, fmt.Errorf("review image is missing %s", name)
	}
	return value.Integer()
}

func text(image map[string]events.DynamoDBAttributeValue, name string) string {
	if value, ok := image[name]; ok && value.DataType() == events.DataTypeString {
		return value.String()
	}
	return ""
}

func number(image map[string]events.DynamoDBAttributeValue, name string) string {
	if value, ok := image[name]; ok && value.DataType() == events.DataTypeNumber {
		return value.Number()
	}
	return ""
}

func (rh *ReviewNotificationHandler) Filter(record events.DynamoDBEventRecord) bool {
	if record.EventName != "INSERT" && record.EventName != "MODIFY" {
		return false
	}
	pk, ok := record.Change.Keys["PK"]
	if !ok || pk.DataType() != events.DataTypeString || !isReviewKey(pk.String()) {
		return false
	}
	if record.EventName == "MODIFY" {
		before, after := record.Change.OldImage, record.Change.NewImage
		return text(before, "comment") != text(after, "comment") ||
			number(before, "rating") != number(after, "rating")
	}
	return true
}

func (rh *ReviewNotificationHandler) Apply(ctx context.Context, record events.DynamoDBEventRecord) error {
	image := record.Change.NewImage
	reviewer, err := integer(image, "reviewer")
	if err != nil {
		return err
	}
	owner, err := integer(image, "recipeOwner")
	if err != nil {
		return err
	}
	if reviewer == owner {
		return nil
	}
	rating, err := integer(image, "rating")
	if err != nil {
		return err
	}
	title := text(image, "recipeTitle")
	reviewerName := text(image, "reviewerName")
	if reviewerName == "" {
		reviewerName = "Someone"
	}
	return rh.Notifications.Publish(ctx, notifications.PublishInput{
		UserId:  owner,
		Subject: fmt.Sprintf(REVIEW_SUBJECT, title),
		Message: fmt.Sprintf(REVIEW_MESSAGE, reviewerName, title, rating),
	})
}

func DefaultReviewNotificationHandler(service notifications.NotificationService) *ReviewNotificationHandler {
	return &ReviewNotificationHandler{
		Notifications: service,
	}
}
