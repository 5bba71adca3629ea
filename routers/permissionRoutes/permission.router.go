package permissionRoutes

import (
	controllers "tradegate/controllers/permission"
	"tradegate/middleware"
	validators "tradegate/validators/permission"

	"github.com/gofiber/fiber/v2"
)

// SetupPermissionRoutes sets up eligibility and grant routes
func SetupPermissionRoutes(app *fiber.App) {
	permissionGroup := app.Group("/permissions")

	permissionGroup.Get("/granted", middleware.JWTMiddleware, controllers.ListGranted)
	permissionGroup.Get("/:key/eligibility", middleware.JWTMiddleware, validators.PermissionKey(), controllers.Evaluate)
	permissionGroup.Post("/:key/claim", middleware.JWTMiddleware, validators.PermissionKey(), controllers.Claim)
}
