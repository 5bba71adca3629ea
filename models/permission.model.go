package models

import (
	"time"

	"gorm.io/gorm"
)

// Well-known permission type keys
const (
	PermissionTradeStocks = "trade_stocks"
	PermissionLiveTrading = "live_trading"
)

// GrantedBySystem marks grants created by the eligibility pipeline rather
// than an administrator.
const GrantedBySystem = "system"

// TradingPermission is an admin-authored definition of a grantable trading
// capability and the requirements a user must satisfy to earn it. Immutable
// at evaluation time.
type TradingPermission struct {
	gorm.Model
	TypeKey                  string `gorm:"type:varchar(64);uniqueIndex;not null" json:"typeKey"` // e.g. "trade_stocks"
	Name                     string `json:"name"`
	Description              string `json:"description"`
	MinAge                   *int   `json:"minAge"`
	RequiresGuardianApproval bool   `gorm:"default:false" json:"requiresGuardianApproval"`
	RequiredLearningPathID   *uint  `gorm:"index" json:"requiredLearningPathId"`
	RequiredContentID        *uint  `gorm:"index" json:"requiredContentId"`
	MinScore                 *int   `json:"minScore"` // applies to RequiredContentID when its completion requirement is QUIZ
	IsDeleted                bool   `gorm:"default:false" json:"isDeleted"`
}

// UserPermission records that a user holds a permission. Created exactly once
// per (user, permission); the unique index makes concurrent grants safe.
type UserPermission struct {
	gorm.Model
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_permission" json:"userId"`
	PermissionID   uint      `gorm:"not null;uniqueIndex:idx_user_permission" json:"permissionId"`
	GrantedAt      time.Time `gorm:"not null" json:"grantedAt"`
	GrantedBy      string    `gorm:"type:varchar(64);not null" json:"grantedBy"` // "system" or admin user id
	OverrideReason string    `json:"overrideReason"`                             // non-empty only for manual overrides

	Permission TradingPermission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}
