package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lam0glia/video-gateway/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type viewed struct {
	ch amqpPublisher
}

// Publish sends the raw JSON payload on the viewed fanout exchange with an
// empty routing key. No message properties are set.
func (q *viewed) Publish(ctx context.Context, event *domain.ViewedEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode json: %w", domain.ErrPublish, err)
	}

	err = q.ch.PublishWithContext(ctx,
		domain.ExchangeViewed, // exchange
		"",                    // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			Body: b,
		})
	if err != nil {
		return fmt.Errorf("%w: rabbitmq: %w", domain.ErrPublish, err)
	}

	return nil
}

// NewViewed expects ch to come from event.NewViewedChannel, which declares
// the exchange before handing the channel out.
func NewViewed(ch amqpPublisher) *viewed {
	return &viewed{
		ch: ch,
	}
}
