package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache stores rendered JSON response bodies under
// "response:{name}" keys with a fixed TTL. Expiration is the only
// eviction; stale entries simply age out.
type ResponseCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewResponseCache creates a ResponseCache backed by the given Client.
func NewResponseCache(c *Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{rdb: c.Underlying(), ttl: ttl}
}

func responseKey(name string) string {
	return "response:" + name
}

// Get returns the cached body for a name, with a miss reported as ok=false.
func (rc *ResponseCache) Get(ctx context.Context, name string) ([]byte, bool, error) {
	body, err := rc.rdb.Get(ctx, responseKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis: get response %s: %w", name, err)
	}
	return body, true, nil
}

// Set stores the body for a name under the cache TTL.
func (rc *ResponseCache) Set(ctx context.Context, name string, body []byte) error {
	if err := rc.rdb.Set(ctx, responseKey(name), body, rc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set response %s: %w", name, err)
	}
	return nil
}
