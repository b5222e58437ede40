// Package auth rejects requests without the configured api key.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Header carries the api key.
const Header = "X-API-Key"

// Config holds the auth middleware settings.
type Config struct {
	// ApiKey is the expected key. Empty rejects every request.
	ApiKey string
}

// New returns a middleware rejecting requests without the configured api key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(Header)
		if cfg.ApiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.ApiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}
		return c.Next()
	}
}
