package accessRoutes

import (
	controllers "tradegate/controllers/access"
	"tradegate/middleware"
	validators "tradegate/validators/trading"

	"github.com/gofiber/fiber/v2"
)

// SetupAccessRoutes sets up the capability gate and subscription refresh
// routes. The check route uses the soft session middleware so anonymous
// callers get a decision that preserves their destination.
func SetupAccessRoutes(app *fiber.App) {
	accessGroup := app.Group("/access")

	accessGroup.Post("/check", middleware.SessionMiddleware, validators.CapabilityCheck(), controllers.Check)
	accessGroup.Post("/subscription/refresh", middleware.JWTMiddleware, controllers.RefreshSubscription)
}
