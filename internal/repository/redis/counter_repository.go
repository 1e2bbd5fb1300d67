package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CounterRepository is the key-value counter store backing the tracking
// ingest path. Keys are namespaced per shop and counter name.
type CounterRepository struct {
	client *redis.Client
}

func NewCounterRepository(client *redis.Client) *CounterRepository {
	return &CounterRepository{client: client}
}

func counterKey(shop, name string) string {
	return fmt.Sprintf("counters:%s:%s", shop, name)
}

func (r *CounterRepository) Increment(ctx context.Context, shop, name string) (int64, error) {
	n, err := r.client.Incr(ctx, counterKey(shop, name)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	return n, nil
}

func (r *CounterRepository) Get(ctx context.Context, shop, name string) (int64, error) {
	n, err := r.client.Get(ctx, counterKey(shop, name)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	return n, nil
}
