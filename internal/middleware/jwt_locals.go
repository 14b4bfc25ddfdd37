package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

// AttachJWTLocals lifts the verified claims into plain locals so
// handlers never touch the token themselves: userId (uint) and role.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("claims")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := raw.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		uid, err := strconv.ParseUint(strings.TrimSpace(claims.UserID), 10, 64)
		if err != nil || uid == 0 {
			return fiber.ErrUnauthorized
		}

		role := strings.ToLower(strings.TrimSpace(claims.Role))
		if role == "" {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", uint(uid))
		c.Locals("role", role)

		return c.Next()
	}
}
