package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage adapts the shared Redis client to the guest cart's storage
// contract.
type RedisStorage struct{}

func (RedisStorage) Get(ctx context.Context, key string) (string, error) {
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (RedisStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return RedisClient.Set(ctx, key, value, ttl).Err()
}

func (RedisStorage) Del(ctx context.Context, key string) error {
	return RedisClient.Del(ctx, key).Err()
}
