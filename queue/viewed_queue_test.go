package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/lam0glia/video-gateway/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	calls         int
	err           error
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.calls++
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

type fakeRedis struct {
	channel string
	message interface{}
	err     error
}

func (r *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	r.channel, r.message = channel, message
	return redis.NewIntResult(1, r.err)
}

func TestViewedPublish(t *testing.T) {
	ch := &fakeChannel{}

	err := NewViewed(ch).Publish(context.Background(), domain.NewViewedEvent("abc123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ch.exchange != "viewed" {
		t.Errorf("expected exchange viewed, got %q", ch.exchange)
	}
	if ch.key != "" {
		t.Errorf("expected empty routing key, got %q", ch.key)
	}
	if got := string(ch.msg.Body); got != `{"video":{"id":"abc123"}}` {
		t.Errorf("unexpected payload %s", got)
	}
	if ch.msg.ContentType != "" || ch.msg.DeliveryMode != 0 {
		t.Error("expected no message properties to be set")
	}
}

func TestViewedPublishFailure(t *testing.T) {
	ch := &fakeChannel{err: amqp.ErrClosed}

	err := NewViewed(ch).Publish(context.Background(), domain.NewViewedEvent("abc123"))
	if !errors.Is(err, domain.ErrPublish) {
		t.Errorf("expected ErrPublish, got %v", err)
	}
	if !errors.Is(err, amqp.ErrClosed) {
		t.Errorf("expected the amqp cause to be kept, got %v", err)
	}
	if ch.calls != 1 {
		t.Errorf("expected a single attempt, got %d", ch.calls)
	}
}

func TestViewedRedisPublish(t *testing.T) {
	r := &fakeRedis{}

	err := NewViewedRedis(r).Publish(context.Background(), domain.NewViewedEvent("abc123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.channel != "viewed" {
		t.Errorf("expected channel viewed, got %q", r.channel)
	}

	b, ok := r.message.([]byte)
	if !ok || string(b) != `{"video":{"id":"abc123"}}` {
		t.Errorf("unexpected payload %v", r.message)
	}
}

func TestViewedRedisPublishFailure(t *testing.T) {
	r := &fakeRedis{err: errors.New("connection refused")}

	err := NewViewedRedis(r).Publish(context.Background(), domain.NewViewedEvent("abc123"))
	if !errors.Is(err, domain.ErrPublish) {
		t.Errorf("expected ErrPublish, got %v", err)
	}
}
