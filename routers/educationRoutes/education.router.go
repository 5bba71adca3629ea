package educationRoutes

import (
	controllers "tradegate/controllers/education"
	"tradegate/middleware"
	validators "tradegate/validators/education"

	"github.com/gofiber/fiber/v2"
)

// SetupEducationRoutes sets up content listing and progress tracking routes
func SetupEducationRoutes(app *fiber.App) {
	educationGroup := app.Group("/education")

	// Catalog browsing
	educationGroup.Get("/content", middleware.JWTMiddleware, controllers.ListContent)
	educationGroup.Get("/paths", middleware.JWTMiddleware, controllers.ListLearningPaths)
	educationGroup.Get("/paths/:path_id", middleware.JWTMiddleware, validators.PathID(), controllers.GetPathItems)

	// Progress tracking (called by the content-consumption surface)
	educationGroup.Post("/content/:content_id/progress", middleware.JWTMiddleware, validators.ContentID(), validators.UpdateProgress(), controllers.UpdateProgress)
	educationGroup.Get("/content/:content_id/progress", middleware.JWTMiddleware, validators.ContentID(), controllers.GetProgress)
}
