package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gracechapel/content-api/internal/api/metrics"
	"github.com/gracechapel/content-api/internal/core/domain"
)

// Gate is the slice of the authorization gate the middleware needs.
type Gate interface {
	Resolve(ctx context.Context, token string) (*domain.AdminIdentity, error)
}

// Auth extracts the bearer token, runs it through the authorization gate and
// injects the resolved identity into the echo context. A bearer who is not
// an administrator has already been signed out by the gate by the time the
// 403 leaves this middleware.
func Auth(gate Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := gate.Resolve(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrNotAuthorized) {
					metrics.AuthDeniedTotal.WithLabelValues("unauthorized").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "not authorized")
				}
				metrics.AuthDeniedTotal.WithLabelValues("unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session")
			}

			c.Set("identity", identity)
			c.Set("role", identity.Role)
			c.Set("token", parts[1])

			return next(c)
		}
	}
}
