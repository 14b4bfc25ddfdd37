package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/workbridge-jp/workbridge_be/internal/utils"
)

const TokenCookie = "wb_token"

// JWTFromCookie reads the session token from the HTTPOnly cookie and
// stores the parsed claims for the rest of the chain.
func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(TokenCookie)
		if tokenStr == "" {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
