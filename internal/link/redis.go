package link

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "url:"

// RedisCache backs the Cache port with a Redis instance. TTLs map straight
// onto key expiry, so an expired link simply vanishes from the hot path.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache {
	return &RedisCache{rdb: rdb}
}

func (c *RedisCache) Get(ctx context.Context, shortCode string) (string, error) {
	dest, err := c.rdb.Get(ctx, cacheKeyPrefix+shortCode).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return dest, nil
}

func (c *RedisCache) SetNX(ctx context.Context, shortCode, destination string, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, cacheKeyPrefix+shortCode, destination, ttl).Result()
}

func (c *RedisCache) Del(ctx context.Context, shortCode string) error {
	return c.rdb.Del(ctx, cacheKeyPrefix+shortCode).Err()
}

func (c *RedisCache) Exists(ctx context.Context, shortCode string) (bool, error) {
	n, err := c.rdb.Exists(ctx, cacheKeyPrefix+shortCode).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
