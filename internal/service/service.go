package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/mechanic-shop/internal/events"
)

// publishEvent stamps and publishes an event, tolerating a nil dispatcher
// so services stay testable without one.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = dispatcher.Publish(ctx, event)
}
