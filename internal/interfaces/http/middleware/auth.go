package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fixora-app/fixora/internal/application/user/usecases"
	"github.com/fixora-app/fixora/internal/domain/user"
	"github.com/fixora-app/fixora/internal/infrastructure/auth"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
	"github.com/fixora-app/fixora/internal/shared/utils"
)

const contextKeyProfile = "profile"

// TokenVerifier parses a bearer token into its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens   TokenVerifier
	profiles usecases.ProfileResolver
	logger   logger.Interface
}

func NewAuthMiddleware(tokens TokenVerifier, profiles usecases.ProfileResolver, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		profiles: profiles,
		logger:   logger,
	}
}

// RequireAuth resolves the caller's profile from the token and stores it
// on the context. The profile is reloaded on every request so role and
// wing changes apply without a new login.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			if stderrors.Is(err, jwt.ErrTokenExpired) {
				utils.ErrorResponseWithError(c, errors.NewTokenExpiredError("access token"))
			} else {
				m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
				utils.ErrorResponseWithError(c, errors.NewTokenInvalidError("access token"))
			}
			c.Abort()
			return
		}

		profile, err := m.profiles.Resolve(c.Request.Context(), claims.UserSID)
		if err != nil {
			m.logger.Warnw("failed to resolve token owner", "user_sid", claims.UserSID, "error", err)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(contextKeyProfile, profile)
		c.Set(constants.ContextKeyUserID, profile.SID)
		c.Set(constants.ContextKeyUserRole, profile.Role.String())

		c.Next()
	}
}

// bearerToken reads the Authorization header. EventSource cannot set
// headers, so the stream route may pass access_token as a query parameter.
func bearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		if token := c.Query("access_token"); token != "" {
			return token, nil
		}
		return "", errors.NewUnauthorizedError("missing authorization token")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errors.NewUnauthorizedError("invalid authorization header format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// CurrentProfile returns the profile stored by RequireAuth.
func CurrentProfile(c *gin.Context) (user.Profile, bool) {
	v, ok := c.Get(contextKeyProfile)
	if !ok {
		return user.Profile{}, false
	}
	p, ok := v.(user.Profile)
	return p, ok
}

// SetProfile stores p as the authenticated caller. Used by tests and by
// RequireAuth.
func SetProfile(c *gin.Context, p user.Profile) {
	c.Set(contextKeyProfile, p)
	c.Set(constants.ContextKeyUserID, p.SID)
	c.Set(constants.ContextKeyUserRole, p.Role.String())
}
