package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/infrastructure/permission"
	"github.com/fixora-app/fixora/internal/interfaces/http/handlers"
	"github.com/fixora-app/fixora/internal/interfaces/http/middleware"
)

// StaffRouteConfig holds dependencies for warden-only staff management.
type StaffRouteConfig struct {
	StaffHandler         *handlers.StaffHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupStaffRoutes(engine *gin.Engine, cfg *StaffRouteConfig) {
	staff := engine.Group("/staff")
	staff.Use(cfg.AuthMiddleware.RequireAuth())
	{
		staff.GET("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceStaff, permission.ActionRead),
			cfg.StaffHandler.ListStaff)
		staff.POST("",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceStaff, permission.ActionManage),
			cfg.StaffHandler.AddStaff)
		staff.DELETE("/:id",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceStaff, permission.ActionManage),
			cfg.StaffHandler.RemoveStaff)
	}
}
