package domain

import "context"

type ViewPublisher interface {
	Publish(ctx context.Context, event *ViewedEvent) error
}

// ViewDispatcher hands events to a background publisher. Dispatch must
// never block the caller.
type ViewDispatcher interface {
	Dispatch(event *ViewedEvent)
}
