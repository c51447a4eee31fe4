package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterAuditSubscriber logs every published event as a structured audit
// record.
func RegisterAuditSubscriber(dispatcher Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("domain event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Time("timestamp", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
	for _, eventType := range AllEventTypes {
		dispatcher.Subscribe(eventType, handler)
	}
}
