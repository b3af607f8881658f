package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lam0glia/video-gateway/domain"
	"github.com/redis/go-redis/v9"
)

type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// viewedRedis mirrors viewed events onto a Redis pub/sub channel of the same
// name for subscribers that are not on the AMQP broker.
type viewedRedis struct {
	client redisPublisher
}

func (q *viewedRedis) Publish(ctx context.Context, event *domain.ViewedEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encode json: %w", domain.ErrPublish, err)
	}

	if err = q.client.Publish(ctx, domain.ExchangeViewed, b).Err(); err != nil {
		return fmt.Errorf("%w: redis: %w", domain.ErrPublish, err)
	}

	return nil
}

func NewViewedRedis(client redisPublisher) *viewedRedis {
	return &viewedRedis{
		client: client,
	}
}
