package middleware

import (
	"club-api/core/cache"
	"club-api/core/config"
	"club-api/core/constants"
	"club-api/core/controller"
	"club-api/core/errors"
	"club-api/core/logger"
	"club-api/core/utils"
	stdErrors "errors"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Middleware struct {
	cache cache.Cache
}

func NewMiddleware(c cache.Cache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware accepts access tokens from the Authorization header, or from the
// "token" query parameter for websocket upgrades. With roles given, the token's
// role must be one of them.
func (m *Middleware) AuthMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if stdErrors.Is(err, utils.ErrMissingToken) && c.QueryParam("token") != "" {
				token, err = c.QueryParam("token"), nil
			}
			if err != nil {
				if stdErrors.Is(err, utils.ErrMissingToken) {
					return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrMissingAuthorizationHeader, "missing authorization header")
				}
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrInvalidTokenFormat, "invalid authorization header")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				if stdErrors.Is(err, utils.ErrTokenExpired) {
					return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrTokenExpired, "token expired")
				}
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "invalid token scope")
			}

			if m.cache != nil {
				blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:Auth:IsTokenBlacklisted", "error", err)
					return controller.NewErrorResponse(http.StatusInternalServerError, errors.ErrInternalServer, "failed to check token")
				}
				if blacklisted {
					return controller.NewErrorResponse(http.StatusUnauthorized, errors.ErrUnauthorized, "token revoked")
				}
			}

			if len(roles) > 0 && !slices.Contains(roles, claims.Role) {
				return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "insufficient role")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RateLimiter limits requests per client IP.
func (m *Middleware) RateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	store := echoMiddleware.NewRateLimiterMemoryStoreWithConfig(echoMiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RPS),
		Burst:     cfg.Burst,
		ExpiresIn: 3 * time.Minute,
	})
	return echoMiddleware.RateLimiterWithConfig(echoMiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return controller.NewErrorResponse(http.StatusForbidden, errors.ErrForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return controller.NewErrorResponse(http.StatusTooManyRequests, errors.ErrTooManyRequests, "too many requests")
		},
	})
}
