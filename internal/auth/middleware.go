package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SchedulerAuth guards the cron endpoint with a shared bearer secret.
type SchedulerAuth struct {
	secret string
}

// NewSchedulerAuth constructs the middleware.
func NewSchedulerAuth(secret string) *SchedulerAuth {
	return &SchedulerAuth{secret: secret}
}

// Handle rejects requests without the correct secret before any work is
// performed. The response shape is the scheduler contract, not the API
// error envelope.
func (m *SchedulerAuth) Handle(c *fiber.Ctx) error {
	if m.secret == "" {
		return unauthorized(c)
	}

	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return unauthorized(c)
	}
	if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(m.secret)) != 1 {
		return unauthorized(c)
	}
	return c.Next()
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
