package services

import (
	"testing"
	"tradegate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwitchTradingModeLiveRequiresPermission(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "trader@example.com", intPtr(30))
	perm := createPermission(t, db, models.TradingPermission{TypeKey: models.PermissionLiveTrading})

	// Without the permission the switch is rejected, not downgraded
	result, err := SwitchTradingMode(db, user.ID, models.ModeLive)
	require.NoError(t, err)
	assert.False(t, result.Switched)
	assert.Equal(t, DenyPermissionNotGranted, result.Reason)

	mode, err := CurrentTradingMode(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ModePaper, mode)

	_, err = GrantPermission(db, user.ID, perm.ID)
	require.NoError(t, err)

	result, err = SwitchTradingMode(db, user.ID, models.ModeLive)
	require.NoError(t, err)
	assert.True(t, result.Switched)
	assert.Equal(t, models.ModeLive, result.Mode)

	mode, err = CurrentTradingMode(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ModeLive, mode)
}

func TestSwitchTradingModePaperAlwaysAllowed(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "papertrader@example.com", intPtr(30))
	result, err := SwitchTradingMode(db, user.ID, models.ModePaper)
	require.NoError(t, err)
	assert.True(t, result.Switched)
	assert.Equal(t, models.ModePaper, result.Mode)
}

func TestSwitchTradingModeUnknownMode(t *testing.T) {
	db := setupTestDB(t)

	user := createUser(t, db, "confused@example.com", intPtr(30))
	result, err := SwitchTradingMode(db, user.ID, "SANDBOX")
	require.NoError(t, err)
	assert.False(t, result.Switched)
	assert.NotEmpty(t, result.Reason)
}

func TestResolveModePath(t *testing.T) {
	// Paper-mode user asking for a live path is routed to the paper
	// equivalent with the symbol intact
	resolved, redirected := ResolveModePath(models.ModePaper, "/live/trading/AAPL")
	assert.True(t, redirected)
	assert.Equal(t, "/paper/trading/AAPL", resolved)

	resolved, redirected = ResolveModePath(models.ModeLive, "/paper/trading/TSLA")
	assert.True(t, redirected)
	assert.Equal(t, "/live/trading/TSLA", resolved)

	// Matching mode passes through untouched
	resolved, redirected = ResolveModePath(models.ModePaper, "/paper/trading/AAPL")
	assert.False(t, redirected)
	assert.Equal(t, "/paper/trading/AAPL", resolved)

	// Paths without a mode prefix are never rewritten
	resolved, redirected = ResolveModePath(models.ModePaper, "/dashboard")
	assert.False(t, redirected)
	assert.Equal(t, "/dashboard", resolved)

	// A bare mode prefix still swaps
	resolved, redirected = ResolveModePath(models.ModePaper, "/live")
	assert.True(t, redirected)
	assert.Equal(t, "/paper", resolved)
}
