package guardianValidator

import (
	"strconv"
	"strings"
	"tradegate/middleware"

	"github.com/gofiber/fiber/v2"
)

// ApprovalID validates the :id path parameter
func ApprovalID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Approval ID is required!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Approval ID!", nil)
		}

		c.Locals("approvalID", id)
		return c.Next()
	}
}

// Decision validates the approve/deny body
func Decision() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Approved *bool `json:"approved"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Approved == nil {
			errors["approved"] = "Approved must be true or false!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("approvalDecision", *reqData.Approved)
		return c.Next()
	}
}
