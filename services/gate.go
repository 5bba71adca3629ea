package services

import (
	"log"
	"time"
	"tradegate/models"

	"gorm.io/gorm"
)

// Session is the authentication state extracted from the request token.
// Valid=false covers missing, malformed and expired tokens alike.
type Session struct {
	UserID uint
	Valid  bool
}

// CapabilityRequest describes one protected route or action
type CapabilityRequest struct {
	Path                 string `json:"path"`
	RequiredSubscription string `json:"requiredSubscription,omitempty"` // tier name, e.g. "PREMIUM"
	RequiredRole         string `json:"requiredRole,omitempty"`
	RequiredPermission   string `json:"requiredPermission,omitempty"` // permission type key
}

// Decision status values
const (
	DecisionAllow           = "ALLOW"
	DecisionUnauthenticated = "UNAUTHENTICATED"
	DecisionDeny            = "DENY"
)

// Deny reasons
const (
	DenyAuthExpired              = "AUTH_EXPIRED"
	DenyInsufficientSubscription = "INSUFFICIENT_SUBSCRIPTION"
	DenyInsufficientRole         = "INSUFFICIENT_ROLE"
	DenyPermissionNotGranted     = "PERMISSION_NOT_GRANTED"
)

// Redirect targets attached to denials so the caller never has to guess
const (
	RedirectLogin     = "/login"
	RedirectPricing   = "/pricing"
	RedirectDashboard = "/dashboard"
	RedirectEducation = "/education"
)

// Decision is a pure value; the presentation layer interprets it. Every
// non-allow carries a reason and a redirect target.
type Decision struct {
	Status         string `json:"status"` // ALLOW, UNAUTHENTICATED, DENY
	Reason         string `json:"reason,omitempty"`
	RedirectTarget string `json:"redirectTarget,omitempty"`
	ReturnTo       string `json:"returnTo,omitempty"` // original destination, preserved across re-authentication
	AccessDenied   bool   `json:"accessDenied"`
}

// CheckCapability evaluates a capability request in fixed order: auth,
// subscription, role, permission. It returns on the first failure but the
// reason is always specific enough to pick the right redirect. The gate
// never grants on the fly; missing permissions are the grant pipeline's job.
func CheckCapability(db *gorm.DB, session Session, req CapabilityRequest, profileTimeout time.Duration) Decision {
	if !session.Valid {
		return unauthenticated(req.Path)
	}

	// Profile load is bounded; a hung fetch fails closed rather than
	// blocking the caller.
	user, ok := loadProfile(db, session.UserID, profileTimeout)
	if !ok {
		log.Printf("[GATE] profile load failed or timed out user=%d path=%s", session.UserID, req.Path)
		return unauthenticated(req.Path)
	}

	if req.RequiredSubscription != "" {
		if models.TierRank(user.SubscriptionTier) < models.TierRank(req.RequiredSubscription) {
			log.Printf("[GATE] deny user=%d path=%s reason=%s have=%s need=%s",
				user.ID, req.Path, DenyInsufficientSubscription, user.SubscriptionTier, req.RequiredSubscription)
			return Decision{
				Status:         DecisionDeny,
				Reason:         DenyInsufficientSubscription,
				RedirectTarget: RedirectPricing,
				AccessDenied:   true,
			}
		}
	}

	if req.RequiredRole != "" && user.Role != req.RequiredRole {
		log.Printf("[GATE] deny user=%d path=%s reason=%s have=%s need=%s",
			user.ID, req.Path, DenyInsufficientRole, user.Role, req.RequiredRole)
		return Decision{
			Status:         DecisionDeny,
			Reason:         DenyInsufficientRole,
			RedirectTarget: RedirectDashboard,
			AccessDenied:   true,
		}
	}

	if req.RequiredPermission != "" && !HasPermission(db, user.ID, req.RequiredPermission) {
		log.Printf("[GATE] deny user=%d path=%s reason=%s permission=%s",
			user.ID, req.Path, DenyPermissionNotGranted, req.RequiredPermission)
		return Decision{
			Status:         DecisionDeny,
			Reason:         DenyPermissionNotGranted,
			RedirectTarget: RedirectEducation,
			AccessDenied:   true,
		}
	}

	return Decision{Status: DecisionAllow}
}

func unauthenticated(returnTo string) Decision {
	return Decision{
		Status:         DecisionUnauthenticated,
		Reason:         DenyAuthExpired,
		RedirectTarget: RedirectLogin,
		ReturnTo:       returnTo,
	}
}

// loadProfile fetches the user row, giving up after the timeout
func loadProfile(db *gorm.DB, userID uint, timeout time.Duration) (models.User, bool) {
	type loaded struct {
		user models.User
		err  error
	}
	ch := make(chan loaded, 1)

	go func() {
		var user models.User
		err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
		ch <- loaded{user, err}
	}()

	select {
	case result := <-ch:
		return result.user, result.err == nil
	case <-time.After(timeout):
		return models.User{}, false
	}
}
