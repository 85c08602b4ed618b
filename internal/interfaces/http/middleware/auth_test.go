package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora-app/fixora/internal/domain/user"
	uservo "github.com/fixora-app/fixora/internal/domain/user/valueobjects"
	"github.com/fixora-app/fixora/internal/infrastructure/auth"
	"github.com/fixora-app/fixora/internal/shared/constants"
	"github.com/fixora-app/fixora/internal/shared/errors"
	"github.com/fixora-app/fixora/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) Verify(token string) (*auth.Claims, error) {
	return f.claims, f.err
}

type resolverFunc func(ctx context.Context, userSID string) (user.Profile, error)

func (f resolverFunc) Resolve(ctx context.Context, userSID string) (user.Profile, error) {
	return f(ctx, userSID)
}

func testStudent() user.Profile {
	return user.Profile{
		ID:           7,
		SID:          "usr_student0007",
		Name:         "Ada",
		Role:         user.Student(),
		Hostel:       uservo.HostelGirls,
		Room:         "G12",
		HostelGender: uservo.WingFemale,
	}
}

func staticResolver(p user.Profile) resolverFunc {
	return func(ctx context.Context, userSID string) (user.Profile, error) {
		if userSID != p.SID {
			return user.Profile{}, errors.NewUnauthorizedError("user no longer exists")
		}
		return p, nil
	}
}

func newAuthEngine(m *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		p, ok := CurrentProfile(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"sid": p.SID, "user_id": c.GetString(constants.ContextKeyUserID)})
	})
	return r
}

func errorType(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Type
}

func TestRequireAuth_ValidToken(t *testing.T) {
	p := testStudent()
	m := NewAuthMiddleware(&fakeVerifier{claims: &auth.Claims{UserSID: p.SID}}, staticResolver(p), logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	newAuthEngine(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), p.SID)
}

func TestRequireAuth_QueryTokenFallback(t *testing.T) {
	p := testStudent()
	m := NewAuthMiddleware(&fakeVerifier{claims: &auth.Claims{UserSID: p.SID}}, staticResolver(p), logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/me?access_token=good", nil)
	w := httptest.NewRecorder()
	newAuthEngine(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_Rejections(t *testing.T) {
	p := testStudent()

	tests := []struct {
		name     string
		header   string
		verifier *fakeVerifier
		wantType string
	}{
		{
			name:     "missing header",
			verifier: &fakeVerifier{},
			wantType: string(errors.ErrorTypeUnauthorized),
		},
		{
			name:     "wrong scheme",
			header:   "Basic abc",
			verifier: &fakeVerifier{},
			wantType: string(errors.ErrorTypeUnauthorized),
		},
		{
			name:     "expired token",
			header:   "Bearer old",
			verifier: &fakeVerifier{err: fmt.Errorf("failed to parse token: %w", jwt.ErrTokenExpired)},
			wantType: string(errors.ErrorTypeTokenExpired),
		},
		{
			name:     "tampered token",
			header:   "Bearer bad",
			verifier: &fakeVerifier{err: fmt.Errorf("failed to parse token: %w", jwt.ErrTokenSignatureInvalid)},
			wantType: string(errors.ErrorTypeTokenInvalid),
		},
		{
			name:     "deleted user",
			header:   "Bearer good",
			verifier: &fakeVerifier{claims: &auth.Claims{UserSID: "usr_gone0000001"}},
			wantType: string(errors.ErrorTypeUnauthorized),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewAuthMiddleware(tt.verifier, staticResolver(p), logger.NewNopLogger())

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			newAuthEngine(m).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tt.wantType, errorType(t, w))
		})
	}
}

func TestRequireAuth_WithJWTService(t *testing.T) {
	p := testStudent()
	jwtSvc := auth.NewJWTService("test-secret", 5, "fixora-test")
	pair, err := jwtSvc.Generate(p.SID, p.Role.String())
	require.NoError(t, err)

	m := NewAuthMiddleware(jwtSvc, staticResolver(p), logger.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	newAuthEngine(m).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"`+p.SID+`"`)
}
