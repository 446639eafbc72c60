package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swiftroute/logistics-api/internal/core/ports"
)

const (
	aggregateKey = "aggregates:dashboard"
	aggregateTTL = 30 * time.Second
)

// AggregateCache caches the derived dashboard counts in Redis. The short TTL
// bounds staleness even if an invalidation is lost; mutating operations call
// Invalidate so the next read recounts immediately.
type AggregateCache struct {
	client *redis.Client
}

func NewAggregateCache(client *redis.Client) *AggregateCache {
	return &AggregateCache{client: client}
}

// Get returns the cached counts, or (nil, nil) on a miss.
func (c *AggregateCache) Get(ctx context.Context) (*ports.Aggregates, error) {
	raw, err := c.client.Get(ctx, aggregateKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("aggregate cache get: %w", err)
	}

	var agg ports.Aggregates
	if err := json.Unmarshal(raw, &agg); err != nil {
		return nil, fmt.Errorf("aggregate cache decode: %w", err)
	}
	return &agg, nil
}

func (c *AggregateCache) Set(ctx context.Context, agg ports.Aggregates) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, aggregateKey, raw, aggregateTTL).Err()
}

func (c *AggregateCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, aggregateKey).Err()
}
