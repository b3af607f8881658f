package event

import (
	"fmt"

	"github.com/lam0glia/video-gateway/domain"
	"github.com/lam0glia/video-gateway/internal"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type exchangeDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
}

// Connect dials the broker. Any failure, including a malformed URL, is
// reported as domain.ErrConnection.
func Connect(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %w", domain.ErrConnection, err)
	}

	return conn, nil
}

// DeclareFanout idempotently ensures a fanout exchange named name exists.
func DeclareFanout(ch exchangeDeclarer, name string) error {
	err := ch.ExchangeDeclare(
		name,                // name
		amqp.ExchangeFanout, // type
		true,                // durable
		false,               // auto-deleted
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDeclaration, name, err)
	}

	return nil
}

// ViewedChannel owns the single publish channel bound to the viewed exchange.
type ViewedChannel struct {
	*amqp.Channel
}

// NewViewedChannel opens a channel on conn and declares the viewed exchange on
// it. Nothing can be published through the returned channel before the
// declaration succeeded.
func NewViewedChannel(conn *amqp.Connection, logger zerolog.Logger) (*ViewedChannel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %w", domain.ErrConnection, err)
	}

	if err = DeclareFanout(ch, domain.ExchangeViewed); err != nil {
		ch.Close()
		return nil, err
	}

	watchClose(logger, "connection", conn.NotifyClose(make(chan *amqp.Error, 1)))
	watchClose(logger, "channel", ch.NotifyClose(make(chan *amqp.Error, 1)))

	return &ViewedChannel{Channel: ch}, nil
}

func watchClose(logger zerolog.Logger, what string, notify <-chan *amqp.Error) {
	go func() {
		defer internal.LogGoroutineClosed(logger, "rabbitMQ."+what+".NotifyClose")

		// nil means a graceful close initiated by us
		if err, ok := <-notify; ok && err != nil {
			logger.Error().
				Str("resource", what).
				Int("code", err.Code).
				Str("reason", err.Reason).
				Msg("rabbitmq closed unexpectedly, viewed events will fail to publish")
		}
	}()
}
