package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fixora-app/fixora/internal/domain/complaint"
	"github.com/fixora-app/fixora/internal/infrastructure/auth"
	"github.com/fixora-app/fixora/internal/infrastructure/cache"
	"github.com/fixora-app/fixora/internal/infrastructure/config"
	"github.com/fixora-app/fixora/internal/infrastructure/permission"
	"github.com/fixora-app/fixora/internal/infrastructure/pubsub"
	"github.com/fixora-app/fixora/internal/infrastructure/ratelimit"
	"github.com/fixora-app/fixora/internal/infrastructure/services"
	"github.com/fixora-app/fixora/internal/infrastructure/storage"
	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/goroutine"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// ============================================================
// Section 1: Infrastructure
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	c.repos = newRepositories(c.db)

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.Issuer)
	c.hasher = auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	enforcer, err := permission.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	if err := enforcer.SeedDefaults(); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	c.enforcer = enforcer

	feedTTL := time.Duration(cfg.Complaint.FeedCacheTTLMinutes) * time.Minute
	c.complaintCache = cache.NewRedisComplaintCache(c.redis, feedTTL, log.Named("complaint_cache"))
	c.voteDirCache = cache.NewRedisVoteDirectionCache(c.redis)

	c.eventBus = pubsub.NewRedisComplaintEventBus(c.redis, cfg.Complaint.EventChannel, log.Named("complaint_events"))
	c.feedHub = services.NewFeedHub(log.Named("feed_hub"), &services.FeedHubConfig{
		MaxConnsPerUser: cfg.Complaint.MaxStreamsPerUser,
	})

	return nil
}

func newImageUploader(cfg *config.Config, log logger.Interface) *storage.S3ImageUploader {
	return storage.NewS3ImageUploader(cfg.Storage, log.Named("image_uploader"))
}

// NewRedisClient creates the shared client and checks the connection.
func NewRedisClient(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 3: Handlers and middlewares
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	cfg := c.cfg

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.ucs.getCurrentUserUC, log.Named("auth"))
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log.Named("permission"))
	window := time.Duration(cfg.Auth.RateLimit.WindowSeconds) * time.Second
	var limiter ratelimit.Limiter
	if c.redis != nil && cfg.Auth.RateLimit.Requests > 0 {
		limiter = ratelimit.NewRedisRateLimiter(c.redis, constants.RedisKeyRateLimit, ratelimit.Window{
			Limit:    cfg.Auth.RateLimit.Requests,
			Duration: window,
		})
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, "auth", window, log)

	c.hdlrs = newHandlers(c)
}

// ============================================================
// Section 4: Event relay
// ============================================================

// startEventRelay feeds every complaint change published by any instance,
// this one included, into the local hub.
func (c *Container) startEventRelay() {
	log := c.log

	ctx, cancel := context.WithCancel(context.Background())
	c.eventBusMu.Lock()
	c.eventBusCancel = cancel
	c.eventBusMu.Unlock()

	c.background = goroutine.NewGroup(log)
	c.background.Go("complaint-event-subscriber", func() {
		if err := c.eventBus.Subscribe(ctx, func(event complaint.ChangeEvent) {
			c.feedHub.Broadcast(event)
		}); err != nil {
			logSubscriberExit(log, "complaint event subscriber", err)
		}
	})
}

func logSubscriberExit(log logger.Interface, name string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Infow(name+" stopped", "reason", "context canceled")
		return
	}
	log.Errorw(name+" failed", "error", err)
}
