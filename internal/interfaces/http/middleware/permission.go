package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

// PolicyChecker answers whether a role kind may perform action on resource.
type PolicyChecker interface {
	Enforce(role user.RoleKind, resource string, action string) (bool, error)
}

type PermissionMiddleware struct {
	policies PolicyChecker
	logger   logger.Interface
}

func NewPermissionMiddleware(policies PolicyChecker, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		policies: policies,
		logger:   logger,
	}
}

// RequirePermission must run after RequireAuth.
func (m *PermissionMiddleware) RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := CurrentProfile(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		allowed, err := m.policies.Enforce(profile.Role.Kind(), resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_sid", profile.SID, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_sid", profile.SID, "role", profile.Role.String(), "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
