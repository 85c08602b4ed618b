package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fixora-app/fixora/internal/application/complaint/usecases"
	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/mappers"
	"github.com/fixora-app/fixora/internal/infrastructure/persistence/models"
	"github.com/fixora-app/fixora/internal/shared/biztime"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

const (
	complaintFeedKey    = constants.RedisKeyComplaintFeed
	complaintSavedAtKey = constants.RedisKeyComplaintFeed + ":saved_at"

	// defaultSnapshotRefresh applies when the snapshot never expires.
	defaultSnapshotRefresh = 5 * time.Minute
)

var _ usecases.ComplaintCache = (*RedisComplaintCache)(nil)

// RedisComplaintCache keeps the last known complaint list as a Redis hash
// of sid -> JSON row. The row shape is the persistence model so the same
// mapper rebuilds aggregates from either source.
type RedisComplaintCache struct {
	client       *redis.Client
	ttl          time.Duration
	refreshAfter time.Duration
	mapper       mappers.ComplaintMapper
	logger       logger.Interface
}

// NewRedisComplaintCache keeps the snapshot for ttl after the last full
// refresh and asks for a new one at half that age. A zero ttl keeps it
// until the next refresh.
func NewRedisComplaintCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisComplaintCache {
	refreshAfter := defaultSnapshotRefresh
	if ttl > 0 {
		refreshAfter = ttl / 2
	}
	return &RedisComplaintCache{
		client:       client,
		ttl:          ttl,
		refreshAfter: refreshAfter,
		mapper:       mappers.NewComplaintMapper(),
		logger:       logger,
	}
}

func (c *RedisComplaintCache) encode(item *complaint.Complaint) (string, error) {
	data, err := json.Marshal(c.mapper.ToModel(item))
	if err != nil {
		return "", fmt.Errorf("failed to marshal complaint %s: %w", item.SID(), err)
	}
	return string(data), nil
}

// SaveLocal swaps the snapshot in one MULTI so readers never see a
// half-written list.
func (c *RedisComplaintCache) SaveLocal(ctx context.Context, complaints []*complaint.Complaint) error {
	fields := make(map[string]interface{}, len(complaints))
	for _, item := range complaints {
		data, err := c.encode(item)
		if err != nil {
			return err
		}
		fields[item.SID()] = data
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, complaintFeedKey)
	if len(fields) > 0 {
		pipe.HSet(ctx, complaintFeedKey, fields)
		if c.ttl > 0 {
			pipe.Expire(ctx, complaintFeedKey, c.ttl)
		}
	}
	pipe.Set(ctx, complaintSavedAtKey, biztime.ToMillis(biztime.NowUTC()), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save complaint snapshot: %w", err)
	}

	c.logger.Debugw("complaint snapshot saved", "count", len(complaints))
	return nil
}

// NeedsRefresh reports whether the last full save is missing or older than
// the refresh age. Writes in between keep rows current through PutLocal.
func (c *RedisComplaintCache) NeedsRefresh(ctx context.Context) (bool, error) {
	savedAt, err := c.client.Get(ctx, complaintSavedAtKey).Int64()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read snapshot age: %w", err)
	}
	age := biztime.NowUTC().Sub(biztime.FromMillis(savedAt))
	return age >= c.refreshAfter, nil
}

// LoadLocal returns the snapshot newest first. Rows that no longer decode
// are skipped.
func (c *RedisComplaintCache) LoadLocal(ctx context.Context) ([]*complaint.Complaint, error) {
	rows, err := c.client.HGetAll(ctx, complaintFeedKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load complaint snapshot: %w", err)
	}

	out := make([]*complaint.Complaint, 0, len(rows))
	for sid, raw := range rows {
		var model models.ComplaintModel
		if err := json.Unmarshal([]byte(raw), &model); err != nil {
			c.logger.Warnw("skipping unreadable cached complaint", "sid", sid, "error", err)
			continue
		}
		item, err := c.mapper.ToDomain(&model)
		if err != nil {
			c.logger.Warnw("skipping invalid cached complaint", "sid", sid, "error", err)
			continue
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[i].ID() > out[j].ID()
	})
	return out, nil
}

func (c *RedisComplaintCache) PutLocal(ctx context.Context, item *complaint.Complaint) error {
	data, err := c.encode(item)
	if err != nil {
		return err
	}
	if err := c.client.HSet(ctx, complaintFeedKey, item.SID(), data).Err(); err != nil {
		return fmt.Errorf("failed to cache complaint %s: %w", item.SID(), err)
	}
	return nil
}

func (c *RedisComplaintCache) RemoveLocal(ctx context.Context, sid string) error {
	if err := c.client.HDel(ctx, complaintFeedKey, sid).Err(); err != nil {
		return fmt.Errorf("failed to drop cached complaint %s: %w", sid, err)
	}
	return nil
}
