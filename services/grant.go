package services

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"
	"tradegate/models"

	"gorm.io/gorm"
)

// ErrEmptyOverrideReason rejects overrides authored without a reason
var ErrEmptyOverrideReason = errors.New("override reason must not be empty")

// GrantResult reports the outcome of a grant or override attempt
type GrantResult struct {
	Granted    bool            `json:"granted"`
	AlreadyHad bool            `json:"alreadyHad"`
	Reasons    []FailureReason `json:"reasons,omitempty"`

	Permission *models.UserPermission `json:"permission,omitempty"`
}

// GrantPermission turns an eligibility pass into a durable UserPermission
// row. Idempotent: an existing row short-circuits to alreadyHad without
// re-evaluating. Concurrent callers race on the (user, permission) unique
// index; the loser observes alreadyHad. An ineligible user gets
// granted=false with reasons, not an error.
func GrantPermission(db *gorm.DB, userID, permissionID uint) (GrantResult, error) {
	var existing models.UserPermission
	if err := db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		First(&existing).Error; err == nil {
		return GrantResult{AlreadyHad: true, Permission: &existing}, nil
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return GrantResult{}, err
	}

	var perm models.TradingPermission
	if err := db.Where("id = ? AND is_deleted = ?", permissionID, false).First(&perm).Error; err != nil {
		return GrantResult{}, err
	}

	evaluation := EvaluateEligibility(db, user, perm)
	if !evaluation.Eligible {
		log.Printf("[GRANT] denied user=%d permission=%d(%s) reasons=%v", userID, perm.ID, perm.TypeKey, evaluation.Reasons)
		return GrantResult{Granted: false, Reasons: evaluation.Reasons}, nil
	}

	grant := models.UserPermission{
		UserID:       userID,
		PermissionID: permissionID,
		GrantedAt:    time.Now(),
		GrantedBy:    models.GrantedBySystem,
	}

	tx := db.Begin()
	if err := tx.Create(&grant).Error; err != nil {
		tx.Rollback()
		// A concurrent grant may have won the race; the unique index on
		// (user_id, permission_id) guarantees at most one row either way.
		if isDuplicateKey(err) {
			db.Where("user_id = ? AND permission_id = ?", userID, permissionID).First(&existing)
			return GrantResult{AlreadyHad: true, Permission: &existing}, nil
		}
		return GrantResult{}, err
	}
	tx.Commit()

	log.Printf("[GRANT] granted user=%d permission=%d(%s) by=%s", userID, perm.ID, perm.TypeKey, models.GrantedBySystem)
	return GrantResult{Granted: true, Permission: &grant}, nil
}

// OverridePermission grants without evaluation. Requires a non-empty reason
// and records the acting admin; this is the only path that can grant an
// ineligible user.
func OverridePermission(db *gorm.DB, userID, permissionID uint, adminID uint, reason string) (GrantResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return GrantResult{}, ErrEmptyOverrideReason
	}

	var existing models.UserPermission
	if err := db.Where("user_id = ? AND permission_id = ?", userID, permissionID).
		First(&existing).Error; err == nil {
		return GrantResult{AlreadyHad: true, Permission: &existing}, nil
	}

	var perm models.TradingPermission
	if err := db.Where("id = ? AND is_deleted = ?", permissionID, false).First(&perm).Error; err != nil {
		return GrantResult{}, err
	}

	grant := models.UserPermission{
		UserID:         userID,
		PermissionID:   permissionID,
		GrantedAt:      time.Now(),
		GrantedBy:      strconv.FormatUint(uint64(adminID), 10),
		OverrideReason: reason,
	}

	tx := db.Begin()
	if err := tx.Create(&grant).Error; err != nil {
		tx.Rollback()
		if isDuplicateKey(err) {
			db.Where("user_id = ? AND permission_id = ?", userID, permissionID).First(&existing)
			return GrantResult{AlreadyHad: true, Permission: &existing}, nil
		}
		return GrantResult{}, err
	}
	tx.Commit()

	log.Printf("[GRANT] override user=%d permission=%d(%s) admin=%d reason=%q", userID, perm.ID, perm.TypeKey, adminID, reason)
	return GrantResult{Granted: true, Permission: &grant}, nil
}

// ListGrantedPermissions returns every permission the user holds
func ListGrantedPermissions(db *gorm.DB, userID uint) ([]models.UserPermission, error) {
	var grants []models.UserPermission
	err := db.Where("user_id = ?", userID).
		Preload("Permission").
		Order("granted_at asc").
		Find(&grants).Error
	return grants, err
}

// HasPermission reports whether the user holds a permission by type key
func HasPermission(db *gorm.DB, userID uint, typeKey string) bool {
	var count int64
	db.Model(&models.UserPermission{}).
		Joins("JOIN trading_permissions ON trading_permissions.id = user_permissions.permission_id").
		Where("user_permissions.user_id = ? AND trading_permissions.type_key = ?", userID, typeKey).
		Count(&count)
	return count > 0
}

// isDuplicateKey detects unique-constraint violations across the Postgres
// and sqlite drivers
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
