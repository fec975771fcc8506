package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles membatasi akses berdasarkan klaim role di token.
// Dipasang setelah AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Akses ditolak. Anda bukan admin.")
		}
		return c.Next()
	}
}
