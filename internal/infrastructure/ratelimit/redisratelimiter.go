package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter keeps one sorted set of request timestamps per key and
// window, so every instance shares the same budget.
type RedisRateLimiter struct {
	client  *redis.Client
	prefix  string
	windows []Window
	seq     atomic.Uint64
}

var _ Limiter = (*RedisRateLimiter)(nil)

func NewRedisRateLimiter(client *redis.Client, prefix string, windows ...Window) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:  client,
		prefix:  prefix,
		windows: windows,
	}
}

// Allow records the attempt and reports whether it was within budget.
// Rejected attempts are recorded too, so a client hammering the endpoint
// stays blocked until it backs off.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()

	for _, window := range l.windows {
		if window.Limit <= 0 || window.Duration <= 0 {
			continue
		}

		allowed, err := l.checkWindow(ctx, key, window, now)
		if err != nil {
			return false, err
		}

		if !allowed {
			return false, nil
		}
	}

	return true, nil
}

func (l *RedisRateLimiter) checkWindow(ctx context.Context, key string, window Window, now time.Time) (bool, error) {
	redisKey := l.getKey(key, window.Duration)
	windowStart := now.Add(-window.Duration).UnixNano()
	nowNano := now.UnixNano()
	member := fmt.Sprintf("%d-%d", nowNano, l.seq.Add(1))

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", windowStart))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: member})
	pipe.Expire(ctx, redisKey, window.Duration+time.Minute)

	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	return zcard.Val() < int64(window.Limit), nil
}

// Remaining returns how many requests key may still make before the
// tightest window rejects it. Disabled windows are ignored.
func (l *RedisRateLimiter) Remaining(ctx context.Context, key string) (int64, error) {
	now := time.Now()
	pipe := l.client.Pipeline()

	type pending struct {
		window Window
		zcard  *redis.IntCmd
	}
	checks := make([]pending, 0, len(l.windows))
	for _, window := range l.windows {
		if window.Limit <= 0 || window.Duration <= 0 {
			continue
		}
		redisKey := l.getKey(key, window.Duration)
		pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", now.Add(-window.Duration).UnixNano()))
		checks = append(checks, pending{window: window, zcard: pipe.ZCard(ctx, redisKey)})
	}
	if len(checks) == 0 {
		return -1, nil
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to get remaining: %w", err)
	}

	remaining := int64(-1)
	for _, check := range checks {
		left := max(int64(check.window.Limit)-check.zcard.Val(), 0)
		if remaining < 0 || left < remaining {
			remaining = left
		}
	}
	return remaining, nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	keys := make([]string, 0, len(l.windows))
	for _, window := range l.windows {
		keys = append(keys, l.getKey(key, window.Duration))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, window time.Duration) string {
	return fmt.Sprintf("%s%s:%s", l.prefix, identifier, window.String())
}
