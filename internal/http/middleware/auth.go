package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pdfvault/internal/auth/token"
)

const (
	// UserIDLocalKey is the key under which BearerAuth stores the
	// authenticated user's id in Fiber's context locals.
	UserIDLocalKey = "user_id"
	// UserEmailLocalKey stores the authenticated user's email.
	UserEmailLocalKey = "user_email"
)

// BearerAuth verifies the Authorization: Bearer header and stores the
// resolved identity in context locals. A missing, malformed, expired or
// tampered token is rejected identically with 401: the handler chain
// never sees a partially trusted identity.
func BearerAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fiber.ErrUnauthorized
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals(UserIDLocalKey, claims.UserID)
		c.Locals(UserEmailLocalKey, claims.Email)

		return c.Next()
	}
}

// UserID extracts the authenticated user id stored by BearerAuth.
// Empty when the request was not authenticated.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals(UserIDLocalKey).(string); ok {
		return v
	}
	return ""
}
