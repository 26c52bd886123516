package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/interview-coach-team/interview-coach/pkg/jwt"
)

const (
	// UserIDKey is the echo context key for the authenticated user ID
	UserIDKey = "user_id"
	// UserEmailKey is the echo context key for the authenticated user email
	UserEmailKey = "user_email"
)

// EchoAuth returns an Echo middleware that validates the access token and
// sets "user_id" (uuid.UUID) into the Echo context. The user ID is the
// session key for the live interview registry.
func EchoAuth(manager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := manager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(UserIDKey, claims.UserID)
			c.Set(UserEmailKey, claims.Email)

			return next(c)
		}
	}
}

// UserIDFromContext retrieves the authenticated user ID from the Echo context
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}

func extractToken(c echo.Context) string {
	// Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Cookie fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
