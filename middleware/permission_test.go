package middleware

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"tradegate/config"
	"tradegate/database"
	"tradegate/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupGateApp wires a guarded route the way the admin router does
func setupGateApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		ProfileTimeoutMS: 2000,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.EngineModels()...))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/admin/ping", SessionMiddleware, RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "pong", nil)
	})
	return app
}

func TestRequireRoleGuardsRoutes(t *testing.T) {
	app := setupGateApp(t)
	db := database.Database.Db

	admin := models.User{Name: "Admin", Email: "admin@example.com", Password: "hashed", Role: models.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)
	user := models.User{Name: "User", Email: "user@example.com", Password: "hashed", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	// Anonymous callers are turned away before the role check
	req := httptest.NewRequest("GET", "/admin/ping", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	userToken, err := GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	adminToken, err := GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
