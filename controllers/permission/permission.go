package permissionController

import (
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/models"
	"tradegate/services"
	"tradegate/utils"

	"github.com/gofiber/fiber/v2"
)

// findPermissionByKey resolves a catalog entry from its type key
func findPermissionByKey(typeKey string) (models.TradingPermission, error) {
	var perm models.TradingPermission
	err := database.Database.Db.Where("type_key = ? AND is_deleted = ?", typeKey, false).First(&perm).Error
	return perm, err
}

// Evaluate explains whether the session user currently satisfies a
// permission's requirements. Read-only; UIs call it to render the "why not"
// checklist next to a locked feature.
func Evaluate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	perm, err := findPermissionByKey(c.Locals("permissionKey").(string))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Permission not found!", nil)
	}

	result := services.EvaluateEligibility(db, user, perm)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligibility evaluated!", fiber.Map{
		"permission": perm.TypeKey,
		"result":     result,
		"granted":    services.HasPermission(db, userID, perm.TypeKey),
	})
}

// Claim asks the grant service to turn an eligibility pass into a durable
// grant. An ineligible user gets the reason list, not an error.
func Claim(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	perm, err := findPermissionByKey(c.Locals("permissionKey").(string))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Permission not found!", nil)
	}

	result, err := services.GrantPermission(database.Database.Db, userID, perm.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process grant!", nil)
	}

	if result.Granted {
		var user models.User
		if dbErr := database.Database.Db.Where("id = ?", userID).First(&user).Error; dbErr == nil {
			utils.SendPermissionGrantedEmail(user.Email, user.Name, perm.Name)
		}
	}

	switch {
	case result.AlreadyHad:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission already granted!", result)
	case result.Granted:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Permission granted!", result)
	default:
		return middleware.JsonResponse(c, fiber.StatusOK, false, "Requirements not yet met!", result)
	}
}

// ListGranted returns every permission the session user holds
func ListGranted(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	grants, err := services.ListGrantedPermissions(database.Database.Db, userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch permissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Permissions fetched successfully!", grants)
}
