package auth

import (
	"crypto/subtle"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderAPIKey carries the shared API key.
	HeaderAPIKey = "X-API-Key"
	// HeaderUserID carries the acting user, set by the upstream identity layer.
	HeaderUserID = "X-User-ID"

	userIDLocal = "user_id"
)

// Config holds the API key middleware settings.
type Config struct {
	// ApiKey is the key every request must present. Empty disables the check.
	ApiKey string
}

// New returns a middleware that rejects requests without the configured API key.
func New(cfg Config) fiber.Handler {
	expected := []byte(cfg.ApiKey)
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		provided := []byte(c.Get(HeaderAPIKey))
		if subtle.ConstantTimeCompare(provided, expected) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or missing API key"})
		}
		return c.Next()
	}
}

// RequireUser resolves the acting user from the X-User-ID header.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(HeaderUserID)
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid user id"})
		}
		c.Locals(userIDLocal, uint(id))
		return c.Next()
	}
}

// OptionalUser resolves the acting user when the header is present and valid.
func OptionalUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, err := strconv.ParseUint(c.Get(HeaderUserID), 10, 64); err == nil && id > 0 {
			c.Locals(userIDLocal, uint(id))
		}
		return c.Next()
	}
}

// UserID returns the acting user set by RequireUser or OptionalUser, or 0.
func UserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals(userIDLocal).(uint); ok {
		return id
	}
	return 0
}
