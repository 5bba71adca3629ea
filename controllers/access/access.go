package accessController

import (
	"time"
	"tradegate/config"
	"tradegate/database"
	"tradegate/middleware"
	"tradegate/services"
	"tradegate/utils"

	"github.com/gofiber/fiber/v2"
)

// Check evaluates a capability request for the session user and returns the
// gate's decision as a value. Anonymous callers get UNAUTHENTICATED with the
// requested destination preserved, not a 401.
func Check(c *fiber.Ctx) error {
	req, ok := c.Locals("validatedCapability").(*services.CapabilityRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	session := middleware.SessionFromContext(c)
	timeout := time.Duration(config.AppConfig.ProfileTimeoutMS) * time.Millisecond

	decision := services.CheckCapability(database.Database.Db, session, *req, timeout)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Capability evaluated!", decision)
}

// RefreshSubscription re-syncs the session user's tier from the billing
// service. Called by clients after a plan change so the next capability
// check sees the new tier.
func RefreshSubscription(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	tier, err := utils.SyncSubscriptionTier(database.Database.Db, userID)
	if err != nil {
		// Billing being unreachable is transient; the stored tier stays in
		// effect rather than surfacing a fault.
		return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Billing service unavailable, please retry!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription refreshed!", fiber.Map{
		"subscriptionTier": tier,
	})
}
