package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
	vo "github.com/fixora-app/fixora/internal/domain/complaint/valueobjects"
	"github.com/fixora-app/fixora/internal/shared/constants"
)

const (
	voteDirectionKeyPrefix = constants.RedisKeyVoteDirections
	voteDirectionTTL       = 30 * 24 * time.Hour
)

var _ usecases.VoteDirectionCache = (*RedisVoteDirectionCache)(nil)

// RedisVoteDirectionCache stores one hash per complaint, field = viewer ID.
type RedisVoteDirectionCache struct {
	client *redis.Client
}

func NewRedisVoteDirectionCache(client *redis.Client) *RedisVoteDirectionCache {
	return &RedisVoteDirectionCache{client: client}
}

func (c *RedisVoteDirectionCache) key(sid string) string {
	return voteDirectionKeyPrefix + sid
}

// Get returns none on a cache miss.
func (c *RedisVoteDirectionCache) Get(ctx context.Context, sid string, viewerID uint) (vo.VoteDirection, error) {
	raw, err := c.client.HGet(ctx, c.key(sid), strconv.FormatUint(uint64(viewerID), 10)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return vo.VoteNone, nil
		}
		return vo.VoteNone, fmt.Errorf("failed to read vote direction: %w", err)
	}
	d, err := vo.NewVoteDirection(raw)
	if err != nil {
		return vo.VoteNone, nil
	}
	return d, nil
}

// Set records d. Setting none removes the field.
func (c *RedisVoteDirectionCache) Set(ctx context.Context, sid string, viewerID uint, d vo.VoteDirection) error {
	key := c.key(sid)
	field := strconv.FormatUint(uint64(viewerID), 10)

	pipe := c.client.Pipeline()
	if d.IsCast() {
		pipe.HSet(ctx, key, field, d.String())
	} else {
		pipe.HDel(ctx, key, field)
	}
	pipe.Expire(ctx, key, voteDirectionTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store vote direction: %w", err)
	}
	return nil
}

func (c *RedisVoteDirectionCache) Clear(ctx context.Context, sid string) error {
	if err := c.client.Del(ctx, c.key(sid)).Err(); err != nil {
		return fmt.Errorf("failed to clear vote directions: %w", err)
	}
	return nil
}
