package adminRoutes

import (
	controllers "tradegate/controllers/admin"
	"tradegate/middleware"
	"tradegate/models"
	validators "tradegate/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up catalog authoring and override routes. The whole
// group sits behind the capability gate's role check.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.SessionMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Post("/permissions", validators.CreatePermission(), controllers.CreatePermission)
	adminGroup.Post("/content", validators.CreateContent(), controllers.CreateContent)
	adminGroup.Post("/content/prerequisites", validators.AddPrerequisite(), controllers.AddPrerequisite)
	adminGroup.Post("/paths", validators.CreateLearningPath(), controllers.CreateLearningPath)
	adminGroup.Post("/paths/items", validators.AddPathItem(), controllers.AddPathItem)
	adminGroup.Post("/permissions/override", validators.OverrideGrant(), controllers.OverrideGrant)
}
