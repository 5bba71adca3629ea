package permissionValidator

import (
	"regexp"
	"strings"
	"tradegate/middleware"

	"github.com/gofiber/fiber/v2"
)

// Type keys look like "trade_stocks": lowercase words joined by underscores
var typeKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{1,63}$`)

// PermissionKey validates the :key path parameter
func PermissionKey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := strings.TrimSpace(c.Params("key"))
		if key == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Permission key is required!", nil)
		}

		if !typeKeyPattern.MatchString(key) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid permission key!", nil)
		}

		c.Locals("permissionKey", key)
		return c.Next()
	}
}
