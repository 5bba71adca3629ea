package education

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks a user's state on one content item. Unique per
// (user, content); updates only move it forward (attempts increment,
// CompletedAt set once and never cleared).
type UserProgress struct {
	gorm.Model
	UserID           uint       `gorm:"not null;uniqueIndex:idx_user_content" json:"userId"`
	ContentID        uint       `gorm:"not null;uniqueIndex:idx_user_content" json:"contentId"`
	StartedAt        time.Time  `gorm:"not null" json:"startedAt"`
	CompletedAt      *time.Time `json:"completedAt"`
	Score            *int       `json:"score"` // latest attempt's score, nil until a scored attempt
	Attempts         int        `gorm:"default:0" json:"attempts"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
	LastAccessedAt   time.Time  `json:"lastAccessedAt"`
}

// Completed reports whether the item has reached its terminal state
func (p *UserProgress) Completed() bool {
	return p.CompletedAt != nil
}
