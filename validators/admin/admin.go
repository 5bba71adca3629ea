package adminValidator

import (
	"strings"
	"tradegate/middleware"
	"tradegate/models"
	"tradegate/models/education"

	"github.com/gofiber/fiber/v2"
)

var validContentTypes = map[string]bool{
	education.TypeModule:      true,
	education.TypeQuiz:        true,
	education.TypeArticle:     true,
	education.TypeInteractive: true,
	education.TypeVideo:       true,
}

var validRequirements = map[string]bool{
	education.RequirementNone:        true,
	education.RequirementQuiz:        true,
	education.RequirementTime:        true,
	education.RequirementInteraction: true,
}

// CreatePermission validates a permission definition body
func CreatePermission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.TradingPermission)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.TypeKey) == "" {
			errors["type_key"] = "Type key is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.MinAge != nil && (*reqData.MinAge < 0 || *reqData.MinAge > 120) {
			errors["min_age"] = "Min age must be between 0 and 120!"
		}
		if reqData.MinScore != nil && (*reqData.MinScore < 0 || *reqData.MinScore > 100) {
			errors["min_score"] = "Min score must be between 0 and 100!"
		}
		if reqData.MinScore != nil && reqData.RequiredContentID == nil {
			errors["required_content_id"] = "Min score requires a required content!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPermission", reqData)
		return c.Next()
	}
}

// CreateContent validates an educational content body
func CreateContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(education.EducationalContent)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Slug) == "" {
			errors["slug"] = "Slug is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.ContentType != "" && !validContentTypes[reqData.ContentType] {
			errors["content_type"] = "Invalid content type!"
		}
		if reqData.CompletionRequirement != "" && !validRequirements[reqData.CompletionRequirement] {
			errors["completion_requirement"] = "Invalid completion requirement!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedContent", reqData)
		return c.Next()
	}
}

// AddPrerequisite validates a prerequisite edge body
func AddPrerequisite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ContentID  uint `json:"content_id"`
			RequiresID uint `json:"requires_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ContentID == 0 {
			errors["content_id"] = "Content ID is required!"
		}
		if reqData.RequiresID == 0 {
			errors["requires_id"] = "Requires ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPrerequisite", reqData)
		return c.Next()
	}
}

// CreateLearningPath validates a learning path body
func CreateLearningPath() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(education.LearningPath)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.MinAge != nil && (*reqData.MinAge < 0 || *reqData.MinAge > 120) {
			errors["min_age"] = "Min age must be between 0 and 120!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPath", reqData)
		return c.Next()
	}
}

// AddPathItem validates a path item body
func AddPathItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(education.LearningPathItem)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LearningPathID == 0 {
			errors["learning_path_id"] = "Learning path ID is required!"
		}
		if reqData.ContentID == 0 {
			errors["content_id"] = "Content ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPathItem", reqData)
		return c.Next()
	}
}

// OverrideGrant validates an override body
func OverrideGrant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID       uint   `json:"user_id"`
			PermissionID uint   `json:"permission_id"`
			Reason       string `json:"reason"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["user_id"] = "User ID is required!"
		}
		if reqData.PermissionID == 0 {
			errors["permission_id"] = "Permission ID is required!"
		}
		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Override reason must not be empty!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedOverride", reqData)
		return c.Next()
	}
}
