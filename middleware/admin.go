package middleware

import (
	"mathcms/config"
	"mathcms/database"
	"mathcms/models"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly gates admin routes. It is the only place admin access is decided:
// either the user carries the ADMIN role or their email is on the configured
// allow-list. Must run after JWTMiddleware.
func AdminOnly(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "ADMIN" && !config.IsAdminEmail(user.Email) {
		return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	c.Locals("adminUser", user)
	return c.Next()
}
