package tradingValidator

import (
	"strings"
	"tradegate/middleware"
	"tradegate/models"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// SwitchMode validates the target trading mode body
func SwitchMode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Mode string `json:"mode"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		mode := strings.ToUpper(strings.TrimSpace(reqData.Mode))
		if mode != models.ModePaper && mode != models.ModeLive {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"mode": "Mode must be PAPER or LIVE!",
			})
		}

		c.Locals("targetMode", mode)
		return c.Next()
	}
}

// ResolvePath validates the path-resolution body
func ResolvePath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Path string `json:"path"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		path := strings.TrimSpace(reqData.Path)
		if path == "" || !strings.HasPrefix(path, "/") {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"path": "Path must start with /!",
			})
		}

		c.Locals("requestedPath", path)
		return c.Next()
	}
}

// CapabilityCheck validates the capability-check body
func CapabilityCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.CapabilityRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequiredSubscription != "" && models.TierRank(reqData.RequiredSubscription) < 0 {
			errors["requiredSubscription"] = "Unknown subscription tier!"
		}
		if reqData.Path != "" && !strings.HasPrefix(reqData.Path, "/") {
			errors["path"] = "Path must start with /!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCapability", reqData)
		return c.Next()
	}
}
