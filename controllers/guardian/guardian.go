package guardianController

import (
	"log"
	"time"
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/models"
	"tradegate/services"
	"tradegate/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestApproval creates a pending approval for the session user (a minor)
// and notifies their linked guardian. Adults do not need one; duplicates of
// an undecided request are rejected.
func RequestApproval(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var minor models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&minor).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if !minor.IsMinorAt(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Guardian approval is only required for minor accounts!", nil)
	}

	if minor.GuardianID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No guardian linked to this account!", nil)
	}

	var guardian models.User
	if err := db.Where("id = ? AND is_deleted = ?", *minor.GuardianID, false).First(&guardian).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Guardian account not found!", nil)
	}

	permKey := c.Locals("permissionKey").(string)
	var perm models.TradingPermission
	if err := db.Where("type_key = ? AND is_deleted = ?", permKey, false).First(&perm).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Permission not found!", nil)
	}

	// One undecided request per (minor, permission) at a time
	var pending models.GuardianApproval
	if err := db.Where("minor_id = ? AND permission_id = ? AND status = ?", userID, perm.ID, models.ApprovalPending).
		First(&pending).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An approval request is already pending!", pending)
	}

	approval := models.GuardianApproval{
		MinorID:      userID,
		GuardianID:   guardian.ID,
		PermissionID: perm.ID,
	}
	if err := db.Create(&approval).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create approval request!", nil)
	}

	utils.SendGuardianApprovalRequestEmail(guardian.Email, guardian.Name, minor.Name, perm.Name)
	log.Printf("[GUARDIAN] approval requested minor=%d guardian=%d permission=%d(%s)", userID, guardian.ID, perm.ID, perm.TypeKey)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Approval requested!", approval)
}

// Decide records the guardian's verdict. Only the guardian the request is
// addressed to may decide, and a decided request is terminal. An approval
// immediately re-runs the grant pipeline so the minor does not wait for the
// next progress event.
func Decide(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("approvalID").(int)
	approved := c.Locals("approvalDecision").(bool)

	db := database.Database.Db

	var approval models.GuardianApproval
	if err := db.Where("id = ?", requestID).First(&approval).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Approval request not found!", nil)
	}

	if approval.GuardianID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the guardian for this request!", nil)
	}

	if approval.Status != models.ApprovalPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "This request has already been decided!", approval)
	}

	now := time.Now()
	approval.Status = models.ApprovalApproved
	if !approved {
		approval.Status = models.ApprovalDenied
	}
	approval.DecidedAt = &now

	if err := db.Save(&approval).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record decision!", nil)
	}

	var minor models.User
	var perm models.TradingPermission
	db.Where("id = ?", approval.MinorID).First(&minor)
	db.Where("id = ?", approval.PermissionID).First(&perm)

	utils.SendGuardianDecisionEmail(minor.Email, minor.Name, perm.Name, approved)
	log.Printf("[GUARDIAN] decision request=%d guardian=%d status=%s", approval.ID, userID, approval.Status)

	var grant *services.GrantResult
	if approved {
		result, err := services.GrantPermission(db, approval.MinorID, approval.PermissionID)
		if err != nil {
			log.Printf("[GUARDIAN] post-approval grant failed minor=%d permission=%d: %v", approval.MinorID, approval.PermissionID, err)
		} else {
			grant = &result
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Decision recorded!", fiber.Map{
		"approval": approval,
		"grant":    grant,
	})
}

// ListPending returns undecided requests addressed to the session guardian
func ListPending(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var approvals []models.GuardianApproval
	if err := database.Database.Db.
		Where("guardian_id = ? AND status = ?", userID, models.ApprovalPending).
		Preload("Permission").
		Order("created_at asc").
		Find(&approvals).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch approval requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending approvals fetched successfully!", approvals)
}
