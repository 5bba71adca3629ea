package educationValidator

import (
	"strconv"
	"strings"
	"tradegate/middleware"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// ContentID validates the :content_id path parameter
func ContentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentIDStr := strings.TrimSpace(c.Params("content_id"))
		if contentIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Content ID is required!", nil)
		}

		contentID, err := strconv.Atoi(contentIDStr)
		if err != nil || contentID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Content ID!", nil)
		}

		c.Locals("contentID", contentID)
		return c.Next()
	}
}

// PathID validates the :path_id path parameter
func PathID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		pathIDStr := strings.TrimSpace(c.Params("path_id"))
		if pathIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Path ID is required!", nil)
		}

		pathID, err := strconv.Atoi(pathIDStr)
		if err != nil || pathID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Path ID!", nil)
		}

		c.Locals("pathID", pathID)
		return c.Next()
	}
}

// UpdateProgress validates the progress delta body
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(services.ProgressDelta)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score != nil && (*reqData.Score < 0 || *reqData.Score > 100) {
			errors["score"] = "Score must be between 0 and 100!"
		}
		if reqData.TimeSpentSeconds < 0 {
			errors["time_spent_seconds"] = "Time spent cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
