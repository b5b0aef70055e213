package contentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// RedisCache wraps a backing Store with a Redis read-through cache.
// Because entries are content-addressed, cached values never go
// stale: a hash either maps to one immutable byte string or is
// absent, so there is no invalidation to manage — only a TTL to bound
// cache growth.
type RedisCache struct {
	backing Store
	client  *redis.Client
	prefix  string
	ttl     time.Duration
}

// NewRedisCache wraps backing with a Redis cache using client, keying
// entries under prefix and expiring them after ttl (zero means no expiry).
func NewRedisCache(backing Store, client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{backing: backing, client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(h hash.Hash) string {
	if c.prefix == "" {
		return h.String()
	}
	return c.prefix + ":" + h.String()
}

func (c *RedisCache) Put(ctx context.Context, h hash.Hash, data []byte) error {
	if err := c.backing.Put(ctx, h, data); err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(h), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("contentstore: redis cache put: %w", err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, h hash.Hash) ([]byte, error) {
	data, err := c.client.Get(ctx, c.key(h)).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("contentstore: redis cache get: %w", err)
	}

	data, err = c.backing.Get(ctx, h)
	if err != nil {
		return nil, err
	}

	if setErr := c.client.Set(ctx, c.key(h), data, c.ttl).Err(); setErr != nil {
		return data, nil
	}
	return data, nil
}

func (c *RedisCache) Has(ctx context.Context, h hash.Hash) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(h)).Result()
	if err == nil && n > 0 {
		return true, nil
	}
	return c.backing.Has(ctx, h)
}

func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return err
	}
	return c.backing.Close()
}
