package middleware

import (
	"time"
	"tradegate/config"
	"tradegate/database"
	"tradegate/services"

	"github.com/gofiber/fiber/v2"
)

// profileTimeout reads the gate's profile-load bound from config
func profileTimeout() time.Duration {
	return time.Duration(config.AppConfig.ProfileTimeoutMS) * time.Millisecond
}

// RequireCapability guards a route with the capability gate. The decision's
// reason and redirect target are returned to the client verbatim so the
// presentation layer can route the user instead of guessing.
func RequireCapability(req services.CapabilityRequest) fiber.Handler {
	return func(c *fiber.Ctx) error {
		check := req
		if check.Path == "" {
			check.Path = c.Path()
		}

		session := SessionFromContext(c)
		decision := services.CheckCapability(database.Database.Db, session, check, profileTimeout())

		switch decision.Status {
		case services.DecisionAllow:
			return c.Next()
		case services.DecisionUnauthenticated:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  false,
				"message": "Authentication required!",
				"data":    decision,
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    decision,
			})
		}
	}
}

// RequirePermission guards a route on a granted trading permission
func RequirePermission(typeKey string) fiber.Handler {
	return RequireCapability(services.CapabilityRequest{RequiredPermission: typeKey})
}

// RequireRole guards a route on role membership
func RequireRole(role string) fiber.Handler {
	return RequireCapability(services.CapabilityRequest{RequiredRole: role})
}

// RequireSubscription guards a route on a minimum subscription tier
func RequireSubscription(tier string) fiber.Handler {
	return RequireCapability(services.CapabilityRequest{RequiredSubscription: tier})
}
