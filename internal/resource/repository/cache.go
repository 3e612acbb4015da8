package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gogotex/modelgate/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CachedRepo is a read-through Redis cache in front of another Repository.
// Documents are never updated or deleted, and ids are assigned server side
// in insertion order, so a later duplicate sorts after the cached first
// match and a cached hit cannot go stale. Misses are not cached. Redis
// failures degrade to the inner repository.
type CachedRepo[T any] struct {
	inner  Repository[T]
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCachedRepo wraps inner. prefix namespaces keys, e.g. "asset:".
func NewCachedRepo[T any](inner Repository[T], client *redis.Client, prefix string, ttl time.Duration) *CachedRepo[T] {
	return &CachedRepo[T]{inner: inner, client: client, prefix: prefix, ttl: ttl}
}

func (c *CachedRepo[T]) key(modelID string) string {
	return c.prefix + modelID
}

func (c *CachedRepo[T]) Create(ctx context.Context, doc *T) error {
	return c.inner.Create(ctx, doc)
}

func (c *CachedRepo[T]) FindByModelID(ctx context.Context, modelID string) (*T, error) {
	b, err := c.client.Get(ctx, c.key(modelID)).Bytes()
	switch {
	case err == nil:
		var d T
		if jerr := json.Unmarshal(b, &d); jerr == nil {
			return &d, nil
		}
		logger.Warnf("cache: dropping undecodable entry %s", c.key(modelID))
		_ = c.client.Del(ctx, c.key(modelID)).Err()
	case errors.Is(err, redis.Nil):
	default:
		logger.Warnf("cache: get %s failed: %v", c.key(modelID), err)
	}

	d, err := c.inner.FindByModelID(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(d); err == nil {
		if err := c.client.Set(ctx, c.key(modelID), b, c.ttl).Err(); err != nil {
			logger.Warnf("cache: set %s failed: %v", c.key(modelID), err)
		}
	}
	return d, nil
}
