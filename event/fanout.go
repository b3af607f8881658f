package event

import (
	"context"
	"errors"

	"github.com/lam0glia/video-gateway/domain"
)

// multiPublisher publishes every event to all sinks and joins their errors.
// A failing sink does not prevent the others from being attempted.
type multiPublisher struct {
	sinks []domain.ViewPublisher
}

func (p *multiPublisher) Publish(ctx context.Context, event *domain.ViewedEvent) error {
	var errs []error

	for _, sink := range p.sinks {
		if err := sink.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func NewMultiPublisher(sinks ...domain.ViewPublisher) domain.ViewPublisher {
	if len(sinks) == 1 {
		return sinks[0]
	}

	return &multiPublisher{sinks: sinks}
}
