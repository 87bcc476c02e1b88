// src/services/redis_rate_cache.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateCache shares fetched exchange rates between server instances.
type RedisRateCache struct {
	client *redis.Client
}

// NewRedisRateCache connects to Redis and verifies the connection.
func NewRedisRateCache(ctx context.Context, addr, password string, db int) (*RedisRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &RedisRateCache{client: client}, nil
}

func (c *RedisRateCache) GetRate(ctx context.Context, key string) (float64, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid cached rate %q for %s: %w", val, key, err)
	}
	return rate, true, nil
}

func (c *RedisRateCache) SetRate(ctx context.Context, key string, rate float64, ttl time.Duration) error {
	return c.client.Set(ctx, key, strconv.FormatFloat(rate, 'g', -1, 64), ttl).Err()
}

func (c *RedisRateCache) Close() error {
	return c.client.Close()
}
