package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-manager-api/internal/api/metrics"
	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

// UserContextKey is the echo context key under which the authenticated user
// is stored for downstream handlers.
const UserContextKey = "user"

// TokenVerifier resolves a raw token string to the user id it encodes.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth is the gate in front of every protected route. The token is taken
// from the "token" cookie first, then from the Authorization header (cookie
// wins when both are present). A verified token is resolved against the user
// store so a deleted account cannot keep using an old token; the resolved
// user (password hash never serialized) is injected into the context.
//
// Every outcome is terminal for the request: no retry, no refresh path.
func Auth(verifier TokenVerifier, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication token missing")
			}

			userID, err := verifier.Verify(raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					metrics.AuthRejectionsTotal.WithLabelValues("expired").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired, please login again")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Token outlived the account it was issued for.
					metrics.AuthRejectionsTotal.WithLabelValues("stale_user").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
				}
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
