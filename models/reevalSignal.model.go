package models

import "gorm.io/gorm"

// ReevalSignal queues a permission re-evaluation for a user after a content
// completion. Rows stay until a sweep marks them processed, so delivery to
// the grant service is at-least-once; grant idempotency absorbs duplicates.
type ReevalSignal struct {
	gorm.Model
	UserID       uint `gorm:"not null;index" json:"userId"`
	PermissionID uint `gorm:"not null;index" json:"permissionId"`
	Processed    bool `gorm:"default:false;index" json:"processed"`
	Attempts     int  `gorm:"default:0" json:"attempts"`
}
