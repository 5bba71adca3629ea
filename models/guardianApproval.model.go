package models

import (
	"time"

	"gorm.io/gorm"
)

// GuardianApproval status enum values
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalDenied   = "DENIED"
)

// GuardianApproval tracks a guardian's sign-off on a minor receiving a
// permission. Created on request, terminal once decided.
type GuardianApproval struct {
	gorm.Model
	MinorID      uint       `gorm:"not null;index" json:"minorId"`
	GuardianID   uint       `gorm:"not null;index" json:"guardianId"`
	PermissionID uint       `gorm:"not null;index" json:"permissionId"`
	Status       string     `gorm:"type:varchar(20);default:'PENDING'" json:"status"` // PENDING, APPROVED, DENIED
	DecidedAt    *time.Time `json:"decidedAt"`

	Permission TradingPermission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}
