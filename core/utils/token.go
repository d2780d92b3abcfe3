package utils

import (
	"club-api/core/config"
	"club-api/core/constants"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var (
	ErrMissingToken = errors.New("missing authorization token")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role"`
	Scope  string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for userID. Without an explicit ttl the lifetime
// comes from the jwt config for the given scope.
func GenerateToken(userID uuid.UUID, email *string, role, scope string, ttl ...time.Duration) (string, error) {
	cfg := config.Get().JWT

	lifetime := cfg.AccessTTL
	switch scope {
	case constants.ScopeTokenRefresh:
		lifetime = cfg.RefreshTTL
	case constants.ScopeTokenResetPassword:
		lifetime = cfg.ResetTTL
	}
	if len(ttl) > 0 {
		lifetime = ttl[0]
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Scope:  scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}
	if email != nil {
		claims.Email = *email
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(config.Get().JWT.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenTTL is the time left before claims expire.
func TokenTTL(claims *TokenClaims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}

// GetTokenFromHeader reads a bearer token from the Authorization header.
func GetTokenFromHeader(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), nil
}
