package middleware

import (
	"bookmydoctor/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles returns a middleware that allows the request only when the
// token's role claim is in the allowed set. Must run after JWTMiddleware.
// Browsers with the wrong role are sent to their own dashboard rather than a
// generic error page; API clients get a 403.
func RequireRoles(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return denyUnauthenticated(c, "Unauthorized: role not found in token")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if wantsHTML(c) {
			return c.Redirect(role.DashboardPath(), fiber.StatusFound)
		}
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
