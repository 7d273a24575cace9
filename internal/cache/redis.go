package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis opens the Redis connection used for guest carts, address drafts,
// the product cache and checkout rate limiting.
func InitRedis() error {
	redisHost := os.Getenv("REDIS_HOST")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		redisHost = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     redisPassword,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	_, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		return fmt.Errorf("unable to connect to Redis: %v", err)
	}

	log.Println("✅ Redis connected")
	return nil
}

func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// --- Generic cache (product proxy, address drafts) ---

func SetCache(ctx context.Context, key string, value string, duration time.Duration) error {
	return RedisClient.Set(ctx, key, value, duration).Err()
}

// GetCache returns ("", nil) on a miss.
func GetCache(ctx context.Context, key string) (string, error) {
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func DeleteCache(ctx context.Context, key string) error {
	return RedisClient.Del(ctx, key).Err()
}

// --- Rate limiting (checkout endpoints) ---

// IncrementRateLimit bumps the counter for key and keeps the window alive.
func IncrementRateLimit(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := RedisClient.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
