package adminController

import (
	"errors"
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/models"
	"tradegate/models/education"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// Handlers here assume the router has already put the group behind
// middleware.RequireRole(models.RoleAdmin); only request-shape checks remain.

// CreatePermission authors a new trading permission definition
func CreatePermission(c *fiber.Ctx) error {
	perm, ok := c.Locals("validatedPermission").(*models.TradingPermission)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := services.CreateTradingPermission(database.Database.Db, perm); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Permission created successfully!", perm)
}

// CreateContent authors a new educational content item
func CreateContent(c *fiber.Ctx) error {
	content, ok := c.Locals("validatedContent").(*education.EducationalContent)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Create(content).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", content)
}

// AddPrerequisite authors a "requires first" edge between two content items.
// Edges that would close a cycle are rejected before they can affect any
// evaluation.
func AddPrerequisite(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPrerequisite").(*struct {
		ContentID  uint `json:"content_id"`
		RequiresID uint `json:"requires_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	edge, err := services.AddPrerequisite(database.Database.Db, reqData.ContentID, reqData.RequiresID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Prerequisite added successfully!", edge)
}

// CreateLearningPath authors a new learning path
func CreateLearningPath(c *fiber.Ctx) error {
	path, ok := c.Locals("validatedPath").(*education.LearningPath)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := services.CreateLearningPath(database.Database.Db, path); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Learning path created successfully!", path)
}

// AddPathItem places a content item in a learning path
func AddPathItem(c *fiber.Ctx) error {
	item, ok := c.Locals("validatedPathItem").(*education.LearningPathItem)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := services.AddLearningPathItem(database.Database.Db, item); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Path item added successfully!", item)
}

// OverrideGrant grants a permission bypassing evaluation. The acting admin
// and a non-empty reason are recorded; this is the only path that can grant
// an ineligible user.
func OverrideGrant(c *fiber.Ctx) error {
	adminID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedOverride").(*struct {
		UserID       uint   `json:"user_id"`
		PermissionID uint   `json:"permission_id"`
		Reason       string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := services.OverridePermission(database.Database.Db, reqData.UserID, reqData.PermissionID, adminID, reqData.Reason)
	if err != nil {
		if errors.Is(err, services.ErrEmptyOverrideReason) {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, err.Error(), nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to override grant!", nil)
	}

	if result.AlreadyHad {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission already granted!", result)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission granted by override!", result)
}
