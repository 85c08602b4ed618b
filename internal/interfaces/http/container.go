package http

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fixora-app/fixora/internal/infrastructure/auth"
	"github.com/fixora-app/fixora/internal/infrastructure/cache"
	"github.com/fixora-app/fixora/internal/infrastructure/config"
	"github.com/fixora-app/fixora/internal/infrastructure/permission"
	"github.com/fixora-app/fixora/internal/infrastructure/pubsub"
	"github.com/fixora-app/fixora/internal/infrastructure/services"
	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
	"github.com/fixora-app/fixora/internal/shared/goroutine"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

// Container holds infrastructure, repositories, use cases, handlers and the
// background event relay. It wires everything together and owns Shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter

	// Infrastructure services
	jwtSvc         *auth.JWTService
	hasher         *auth.BcryptPasswordHasher
	enforcer       *permission.Enforcer
	complaintCache *cache.RedisComplaintCache
	voteDirCache   *cache.RedisVoteDirectionCache

	// Live feed: the bus relays changes between instances, the hub fans
	// them out to this instance's SSE streams.
	feedHub        *services.FeedHub
	eventBus       *pubsub.RedisComplaintEventBus
	eventBusCancel context.CancelFunc
	eventBusMu     sync.Mutex
	background     *goroutine.Group
}

// NewContainer wires the application. The database must already be
// migrated; casbin policies are seeded here.
func NewContainer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	// Section 1: Infrastructure - repositories, auth, caches, storage, policies
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers and middlewares
	c.initHandlers()

	// Section 4: Cross-instance event relay into the feed hub
	c.startEventRelay()

	return c, nil
}

// Shutdown stops the relay and closes every open stream so the HTTP
// server can drain quickly.
func (c *Container) Shutdown() {
	c.eventBusMu.Lock()
	if c.eventBusCancel != nil {
		c.eventBusCancel()
		c.eventBusCancel = nil
	}
	c.eventBusMu.Unlock()

	if c.background != nil {
		c.background.Wait()
	}

	if c.feedHub != nil {
		c.feedHub.Shutdown()
	}
}
