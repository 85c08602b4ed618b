package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/id"
)

// ParseSIDParam reads a prefixed public ID (cmp_xxx, usr_xxx) from the
// route. A missing or mis-prefixed ID is a validation error naming entity.
func ParseSIDParam(c *gin.Context, param, prefix, entity string) (string, error) {
	sid := c.Param(param)
	if sid == "" {
		return "", errors.NewValidationError(fmt.Sprintf("%s id is required", entity))
	}
	if err := id.ValidatePrefix(sid, prefix); err != nil {
		return "", errors.NewValidationError(fmt.Sprintf("invalid %s id %q, expected %s_ prefix", entity, sid, prefix))
	}
	return sid, nil
}
