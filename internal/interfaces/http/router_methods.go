package http

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/fixora-app/fixora/docs"

	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
	"github.com/fixora-app/fixora/internal/interfaces/http/routes"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		utils.RegisterValidators(v)
	}

	if maxBytes := r.cfg.Storage.MaxImageBytes; maxBytes > 0 {
		// Leave room for the text fields sent alongside the image.
		r.engine.MaxMultipartMemory = maxBytes + 1<<20
	}

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	registerSwagger(r.engine)

	r.engine.GET("/health", r.hdlrs.healthHandler.HealthCheck)
	r.engine.GET("/version", r.hdlrs.healthHandler.Version)

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler:    r.hdlrs.authHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupComplaintRoutes(r.engine, &routes.ComplaintRouteConfig{
		ComplaintHandler:     r.hdlrs.complaintHandler,
		StreamHandler:        r.hdlrs.streamHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})

	routes.SetupStaffRoutes(r.engine, &routes.StaffRouteConfig{
		StaffHandler:         r.hdlrs.staffHandler,
		AuthMiddleware:       r.authMiddleware,
		PermissionMiddleware: r.permissionMiddleware,
	})
}

// registerSwagger serves the OpenAPI document and UI under /swagger/.
func registerSwagger(engine *gin.Engine) {
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
