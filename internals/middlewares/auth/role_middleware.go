package auth

import (
	"github.com/gofiber/fiber/v2"

	"piketku_backend/internals/constants"
)

// IsAdmin membatasi route hanya untuk role admin.
// Dipasang SETELAH AuthJWT (butuh Locals "role").
func IsAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if role != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
		return c.Next()
	}
}
