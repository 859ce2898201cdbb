// Package security holds the request guards of the mock backend.
package security

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

// BearerAuth rejects requests whose bearer token differs from token. An
// empty token disables the check.
func BearerAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return next(c)
			}
			header := c.Request().Header.Get("Authorization")
			got, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || got != token {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"detail": "Not authenticated",
				})
			}
			return next(c)
		}
	}
}

// RateLimit allows perSecond requests per client address.
func RateLimit(perSecond float64) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(perSecond),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{
				"detail": "Could not identify client",
			})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"detail": "Rate limit exceeded. Please try again later.",
			})
		},
	})
}

// RequestID echoes the caller's X-Request-ID so logs on both sides line up.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
				c.Response().Header().Set(echo.HeaderXRequestID, id)
			}
			return next(c)
		}
	}
}
