package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	authClient *auth.Client
}

func NewAuthMiddleware(client *auth.Client) *AuthMiddleware {
	return &AuthMiddleware{authClient: client}
}

// RequireAuth verifies the bearer ID token and stores the caller's uid
// in the echo context. Every per-user authorization predicate
// downstream keys on this uid.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := m.verify(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		c.Set("uid", uid)
		return next(c)
	}
}

// OptionalAuth sets uid when a valid token is present and lets the
// request through either way. Used by public read endpoints.
func (m *AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if uid, ok := m.verify(c); ok {
			c.Set("uid", uid)
		}
		return next(c)
	}
}

func (m *AuthMiddleware) verify(c echo.Context) (string, bool) {
	authz := c.Request().Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	tokenStr := strings.TrimPrefix(authz, "Bearer ")
	token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
	if err != nil {
		return "", false
	}
	return token.UID, true
}
