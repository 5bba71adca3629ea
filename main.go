package main

import (
	"log"
	"tradegate/config"
	"tradegate/database"
	accessRoutes "tradegate/routers/accessRoutes"
	adminRoutes "tradegate/routers/adminRoutes"
	authRoutes "tradegate/routers/authRoutes"
	educationRoutes "tradegate/routers/educationRoutes"
	guardianRoutes "tradegate/routers/guardianRoutes"
	permissionRoutes "tradegate/routers/permissionRoutes"
	tradingRoutes "tradegate/routers/tradingRoutes"
	"tradegate/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	educationRoutes.SetupEducationRoutes(app)
	permissionRoutes.SetupPermissionRoutes(app)
	guardianRoutes.SetupGuardianRoutes(app)
	tradingRoutes.SetupTradingRoutes(app)
	accessRoutes.SetupAccessRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	// Redelivers pending permission re-evaluations until the grant service
	// has seen each one at least once
	utils.InitializeReevalScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
