package tradingController

import (
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// GetMode returns the session user's active trading mode
func GetMode(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	mode, err := services.CurrentTradingMode(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trading mode!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trading mode fetched successfully!", fiber.Map{
		"mode": mode,
	})
}

// SwitchMode moves the user between paper and live trading
func SwitchMode(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	target := c.Locals("targetMode").(string)

	result, err := services.SwitchTradingMode(database.Database.Db, userID, target)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to switch trading mode!", nil)
	}

	if !result.Switched {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Trading mode switch rejected!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trading mode switched!", result)
}

// ResolvePath maps a mode-prefixed path to the equivalent path under the
// user's active mode. A redirect here is a UX convenience; the target path
// still goes through the capability gate like any other request.
func ResolvePath(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	path := c.Locals("requestedPath").(string)

	mode, err := services.CurrentTradingMode(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trading mode!", nil)
	}

	resolved, redirected := services.ResolveModePath(mode, path)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Path resolved!", fiber.Map{
		"mode":       mode,
		"path":       resolved,
		"redirected": redirected,
	})
}
