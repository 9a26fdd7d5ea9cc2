// Package ratelimit implements fixed-window request counters backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/civictrack/issue-reporter/internal/config"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter allows at most limit hits per key within one window.
// The window starts with the first hit on a key.
type RedisLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisLimiter(client redis.Cmdable, cfg config.RateLimit) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  cfg.Limit,
		window: cfg.Window,
		prefix: cfg.Prefix,
	}
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	const op = "internal.ratelimit.NewRedisClient"

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: failed to connect to redis: %w", op, err)
	}

	return client, nil
}

// Allow records a hit for key. When the limit is exceeded it returns false and
// the time left until the window resets.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	const op = "internal.ratelimit.RedisLimiter.Allow"

	redisKey := l.prefix + ":" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%s: failed to increment counter: %w", op, err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("%s: failed to set ttl: %w", op, err)
		}
	}

	if count <= l.limit {
		return true, 0, nil
	}

	retryAfter, err := l.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%s: failed to read ttl: %w", op, err)
	}

	// A counter without ttl would block the key forever.
	if retryAfter < 0 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("%s: failed to set ttl: %w", op, err)
		}

		retryAfter = l.window
	}

	return false, retryAfter, nil
}
