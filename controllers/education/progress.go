package educationController

import (
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/models/education"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// UpdateProgress records one attempt on a content item for the session
// user. Called by the content-consumption surface after each attempt.
func UpdateProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	db := database.Database.Db

	var content education.EducationalContent
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", contentID, false, true).First(&content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	// Locked content stays locked until its prerequisites are complete
	met, missing, err := services.PrerequisitesMet(db, userID, uint(contentID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check prerequisites!", nil)
	}
	if !met {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the prerequisite content first!", fiber.Map{
			"missingContentIds": missing,
		})
	}

	delta, ok := c.Locals("validatedProgress").(*services.ProgressDelta)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	progress, completedNow, err := services.UpdateProgress(db, userID, uint(contentID), *delta)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", fiber.Map{
		"progress":     progress,
		"completedNow": completedNow,
	})
}

// GetProgress returns the user's progress row for one content item
func GetProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	contentID := c.Locals("contentID").(int)

	var progress education.UserProgress
	if err := database.Database.Db.Where("user_id = ? AND content_id = ?", userID, contentID).First(&progress).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No progress recorded yet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}
