package event

import (
	"context"
	"time"

	"github.com/lam0glia/video-gateway/domain"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
)

type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		OpenTimeout:      10 * time.Second,
	}
}

// breakerPublisher fails fast while the wrapped publisher keeps failing.
type breakerPublisher struct {
	next domain.ViewPublisher
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func (p *breakerPublisher) Publish(ctx context.Context, event *domain.ViewedEvent) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.Publish(ctx, event)
	})

	return err
}

func (p *breakerPublisher) State() gobreaker.State {
	return p.cb.State()
}

func NewBreaker(cfg BreakerConfig, next domain.ViewPublisher, logger zerolog.Logger) *breakerPublisher {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("publisher circuit breaker changed state")
		},
	}

	return &breakerPublisher{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}
