package events

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
	"philcali.me/mealplanner/internal/logger"
)

type EventFilter interface {
	Filter(record events.DynamoDBEventRecord) bool
	Apply(ctx context.Context, record events.DynamoDBEventRecord) error
}

// Dispatch hands every record to the handlers that accept it. A failing
// handler is logged and skipped so one bad record does not stall the stream.
// The number of failed applications is returned.
func Dispatch(ctx context.Context, handlers []EventFilter, records []events.DynamoDBEventRecord) int {
	failures := 0
	for _, record := range records {
		for _, handler := range handlers {
			if !handler.Filter(record) {
				continue
			}
			if err := handler.Apply(ctx, record); err != nil {
				failures++
				logger.Error("Failed to handle stream record",
					zap.String("eventId", record.EventID),
					zap.String("eventName", record.EventName),
					zap.Error(err))
			}
		}
	}
	return failures
}
