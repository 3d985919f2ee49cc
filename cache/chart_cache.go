package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chart:"

// ChartCache keeps condensed chart documents in Redis, keyed by store path.
// A nil *ChartCache is a valid, always-missing cache.
type ChartCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewChartCache wraps client. A zero ttl keeps entries until evicted.
func NewChartCache(client *redis.Client, ttl time.Duration) *ChartCache {
	return &ChartCache{client: client, ttl: ttl}
}

// Key returns the Redis key of a document path.
func Key(path string) string {
	return keyPrefix + path
}

// Get returns the cached document. A miss is (nil, false, nil).
func (c *ChartCache) Get(ctx context.Context, path string) ([]byte, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	data, err := c.client.Get(ctx, Key(path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached chart %s: %w", path, err)
	}
	return data, true, nil
}

func (c *ChartCache) Set(ctx context.Context, path string, data []byte) error {
	if c == nil {
		return nil
	}
	if err := c.client.Set(ctx, Key(path), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache chart %s: %w", path, err)
	}
	return nil
}

func (c *ChartCache) Delete(ctx context.Context, path string) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, Key(path)).Err(); err != nil {
		return fmt.Errorf("failed to evict chart %s: %w", path, err)
	}
	return nil
}

// Close 关闭Redis连接
func (c *ChartCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
