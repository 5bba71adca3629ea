package services

import (
	"log"
	"strings"
	"tradegate/models"

	"gorm.io/gorm"
)

// ModeSwitchResult reports a trading-mode transition attempt. Switching to
// live without the live-trading permission is rejected, never silently
// downgraded.
type ModeSwitchResult struct {
	Switched bool   `json:"switched"`
	Mode     string `json:"mode"`
	Reason   string `json:"reason,omitempty"`
}

// SwitchTradingMode moves the user between paper and live. Live requires the
// live_trading permission, which is earned through the same engine.
func SwitchTradingMode(db *gorm.DB, userID uint, target string) (ModeSwitchResult, error) {
	if target != models.ModePaper && target != models.ModeLive {
		return ModeSwitchResult{Reason: "unknown trading mode"}, nil
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return ModeSwitchResult{}, err
	}

	if target == models.ModeLive && !HasPermission(db, userID, models.PermissionLiveTrading) {
		log.Printf("[MODE] rejected live switch user=%d: %s not granted", userID, models.PermissionLiveTrading)
		return ModeSwitchResult{
			Switched: false,
			Mode:     user.TradingMode,
			Reason:   DenyPermissionNotGranted,
		}, nil
	}

	if user.TradingMode != target {
		if err := db.Model(&user).Update("trading_mode", target).Error; err != nil {
			return ModeSwitchResult{}, err
		}
		log.Printf("[MODE] user=%d switched to %s", userID, target)
	}
	return ModeSwitchResult{Switched: true, Mode: target}, nil
}

// CurrentTradingMode returns the user's active mode, defaulting to paper
func CurrentTradingMode(db *gorm.DB, userID uint) (string, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return "", err
	}
	if user.TradingMode == "" {
		return models.ModePaper, nil
	}
	return user.TradingMode, nil
}

// modePathSegment maps the leading path segment to a trading mode
var modePathSegment = map[string]string{
	"paper": models.ModePaper,
	"live":  models.ModeLive,
}

// ResolveModePath rewrites a mode-prefixed path ("/live/trading/AAPL") to
// the equivalent path under the active mode, carrying trailing parameters
// forward. This is a UX soft redirect, not an authorization decision: a
// request resolved to a live path still has to clear the capability gate.
func ResolveModePath(activeMode, path string) (resolved string, redirected bool) {
	trimmed := strings.TrimPrefix(path, "/")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return path, false
	}

	pathMode, ok := modePathSegment[parts[0]]
	if !ok || pathMode == activeMode {
		return path, false
	}

	activeSegment := "paper"
	if activeMode == models.ModeLive {
		activeSegment = "live"
	}

	rest := ""
	if len(parts) == 2 {
		rest = "/" + parts[1]
	}
	return "/" + activeSegment + rest, true
}
