// internal/middleware/auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Athycodz/CoMpliment-Walll/internal/auth"
)

// Context key for the authenticated user's UID (Fiber Locals).
const UserIDContextKey = "userID"

// RequireAuth validates the Authorization: Bearer <Firebase ID token> header
// against the identity provider.
//
// On success:
//   - sets context: userID
//   - continues
//
// On failure:
//   - returns 401
func RequireAuth(provider *auth.Provider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: missing bearer token",
			})
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if idToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: missing bearer token",
			})
		}

		uid, err := provider.VerifyToken(c.Context(), idToken)
		if err != nil {
			log.Printf("[AUTH] ❌ REJECTED | IP=%s | Path=%s | %v", c.IP(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized: invalid or expired token",
			})
		}

		c.Locals(UserIDContextKey, uid)
		return c.Next()
	}
}

// GetUserIDFromContext retrieves the UID set by RequireAuth.
func GetUserIDFromContext(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(UserIDContextKey).(string)
	if !ok || userID == "" {
		log.Printf("[AUTH] GetUserIDFromContext: no userID in context for %s", c.Path())
		return "", false
	}
	return userID, true
}
