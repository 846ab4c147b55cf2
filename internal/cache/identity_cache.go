package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdentityCache stores issued visitor ids with a short lifetime, mirroring
// the sub-minute cookie the browser keeps. An expired entry reads back as
// empty, which makes the caller mint a fresh id.
type IdentityCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, userID string) error
	Delete(ctx context.Context, key string) error
}

type identityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache creates an identity cache with the given lifetime.
func NewIdentityCache(client *redis.Client, ttl time.Duration) IdentityCache {
	return &identityCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *identityCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, "identity:"+key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *identityCache) Set(ctx context.Context, key, userID string) error {
	return c.client.Set(ctx, "identity:"+key, userID, c.ttl).Err()
}

func (c *identityCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, "identity:"+key).Err()
}
