package tradingRoutes

import (
	controllers "tradegate/controllers/trading"
	"tradegate/middleware"
	validators "tradegate/validators/trading"

	"github.com/gofiber/fiber/v2"
)

// SetupTradingRoutes sets up trading-mode routes
func SetupTradingRoutes(app *fiber.App) {
	tradingGroup := app.Group("/trading")

	tradingGroup.Get("/mode", middleware.JWTMiddleware, controllers.GetMode)
	tradingGroup.Put("/mode", middleware.JWTMiddleware, validators.SwitchMode(), controllers.SwitchMode)
	tradingGroup.Post("/resolve", middleware.JWTMiddleware, validators.ResolvePath(), controllers.ResolvePath)
}
