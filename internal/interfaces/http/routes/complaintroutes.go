package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/infrastructure/permission"
	"github.com/fixora-app/fixora/internal/interfaces/http/handlers"
	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
)

// ComplaintRouteConfig holds dependencies for complaint routes.
type ComplaintRouteConfig struct {
	ComplaintHandler     *handlers.ComplaintHandler
	StreamHandler        *handlers.ComplaintStreamHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupComplaintRoutes configures complaint routes. Who may approve, fix,
// edit or vote is decided per complaint by the use cases, not here.
func SetupComplaintRoutes(engine *gin.Engine, cfg *ComplaintRouteConfig) {
	complaints := engine.Group("/complaints")
	complaints.Use(
		cfg.AuthMiddleware.RequireAuth(),
		cfg.PermissionMiddleware.RequirePermission(permission.ResourceComplaint, permission.ActionRead),
	)
	{
		// Collection operations (no ID parameter)
		complaints.GET("", cfg.ComplaintHandler.ListComplaints)
		complaints.POST("", cfg.ComplaintHandler.CreateComplaint)

		// Must come BEFORE /:id
		complaints.GET("/stream",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceFeed, permission.ActionSubscribe),
			cfg.StreamHandler.Stream)

		complaints.POST("/:id/approve", cfg.ComplaintHandler.ApproveComplaint)
		complaints.POST("/:id/fix", cfg.ComplaintHandler.MarkFixed)
		complaints.POST("/:id/vote", cfg.ComplaintHandler.CastVote)

		// Generic parameterized routes (must come LAST)
		complaints.GET("/:id", cfg.ComplaintHandler.GetComplaint)
		complaints.PATCH("/:id", cfg.ComplaintHandler.EditComplaint)
		complaints.DELETE("/:id", cfg.ComplaintHandler.DeleteComplaint)
	}
}
