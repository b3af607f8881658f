package worker

import (
	"context"
	"sync"
	"time"

	"github.com/lam0glia/video-gateway/domain"
	"github.com/lam0glia/video-gateway/internal"
	"github.com/lam0glia/video-gateway/metrics"
	"github.com/rs/zerolog"
)

type Worker interface {
	Run()
	Done() <-chan struct{}
}

// viewDispatcher is the single writer on the broker channel. Requests hand it
// events through a buffered queue and never wait for the outcome.
type viewDispatcher struct {
	publisher domain.ViewPublisher
	timeout   time.Duration
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	mu     sync.RWMutex
	closed bool
	queue  chan *domain.ViewedEvent
	done   chan struct{}
}

// Dispatch enqueues event without blocking. If the queue is full or the
// worker is closed, the event is dropped and logged.
func (w *viewDispatcher) Dispatch(event *domain.ViewedEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.drop(event, "publisher closed")
		return
	}

	select {
	case w.queue <- event:
	default:
		w.drop(event, "publish queue full")
	}
}

func (w *viewDispatcher) drop(event *domain.ViewedEvent, reason string) {
	w.metrics.EventsDropped.Inc()
	w.metrics.PublishFailures.Inc()

	w.logger.Error().
		Str("video_id", event.Video.ID).
		Str("reason", reason).
		Msg("viewed event dropped")
}

func (w *viewDispatcher) Run() {
	defer func() {
		internal.LogGoroutineClosed(w.logger, "ViewDispatcher.Run")
		close(w.done)
	}()

	for event := range w.queue {
		w.publish(event)
	}
}

func (w *viewDispatcher) publish(event *domain.ViewedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	w.logger.Debug().
		Str("video_id", event.Video.ID).
		Msg(`publishing message on "viewed" exchange`)

	if err := w.publisher.Publish(ctx, event); err != nil {
		w.metrics.PublishFailures.Inc()
		w.logger.Error().
			Err(err).
			Str("video_id", event.Video.ID).
			Msg("publish viewed event")

		return
	}

	w.metrics.EventsPublished.Inc()
}

func (w *viewDispatcher) Done() <-chan struct{} {
	return w.done
}

// Close stops accepting events and waits until the queued ones have been
// attempted or ctx expires.
func (w *viewDispatcher) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func NewViewDispatcher(
	publisher domain.ViewPublisher,
	queueSize int,
	timeout time.Duration,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *viewDispatcher {
	return &viewDispatcher{
		publisher: publisher,
		timeout:   timeout,
		logger:    logger,
		metrics:   m,
		queue:     make(chan *domain.ViewedEvent, queueSize),
		done:      make(chan struct{}),
	}
}
