package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fixora-app/fixora/internal/application/user/usecases"
	"github.com/fixora-app/fixora/internal/shared/biztime"
)

const tokenTypeAccess = "access"

// Claims carry only what the auth middleware needs to find the account.
// The role is informational; the profile is reloaded on every request.
type Claims struct {
	UserSID   string `json:"user_sid"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
	issuer           string
}

var _ usecases.TokenIssuer = (*JWTService)(nil)

func NewJWTService(secret string, accessExpMinutes int, issuer string) *JWTService {
	if accessExpMinutes <= 0 {
		accessExpMinutes = 60
	}
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		issuer:           issuer,
	}
}

func (s *JWTService) Generate(userSID string, role string) (*usecases.TokenPair, error) {
	if userSID == "" {
		return nil, fmt.Errorf("user SID is required")
	}

	now := biztime.NowUTC()
	claims := &Claims{
		UserSID:   userSID,
		Role:      role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userSID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.accessExpMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &usecases.TokenPair{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessExpMinutes * 60),
	}, nil
}

// Verify parses an access token. Expiry surfaces as jwt.ErrTokenExpired in
// the error chain.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != tokenTypeAccess || claims.UserSID == "" {
		return nil, fmt.Errorf("token is not an access token")
	}
	return claims, nil
}

func (s *JWTService) AccessExpMinutes() int {
	return s.accessExpMinutes
}
