package guardianRoutes

import (
	controllers "tradegate/controllers/guardian"
	"tradegate/middleware"
	guardianValidators "tradegate/validators/guardian"
	permissionValidators "tradegate/validators/permission"

	"github.com/gofiber/fiber/v2"
)

// SetupGuardianRoutes sets up approval request and decision routes
func SetupGuardianRoutes(app *fiber.App) {
	guardianGroup := app.Group("/guardian")

	// Minor side
	guardianGroup.Post("/approvals/request/:key", middleware.JWTMiddleware, permissionValidators.PermissionKey(), controllers.RequestApproval)

	// Guardian side
	guardianGroup.Get("/approvals/pending", middleware.JWTMiddleware, controllers.ListPending)
	guardianGroup.Patch("/approvals/:id/decide", middleware.JWTMiddleware, guardianValidators.ApprovalID(), guardianValidators.Decision(), controllers.Decide)
}
