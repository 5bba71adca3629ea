package models

import (
	"time"

	"gorm.io/gorm"
)

// Role enum values
const (
	RoleUser     = "USER"
	RoleGuardian = "GUARDIAN"
	RoleAdmin    = "ADMIN"
)

// Subscription tier enum values, lowest to highest
const (
	TierFree    = "FREE"
	TierBasic   = "BASIC"
	TierPremium = "PREMIUM"
)

// Trading mode enum values
const (
	ModePaper = "PAPER"
	ModeLive  = "LIVE"
)

// Adulthood threshold for guardian approval checks
const AdultAge = 18

type User struct {
	gorm.Model
	Name             string     `gorm:"default:''" json:"name"`
	Email            string     `gorm:"unique;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	Role             string     `gorm:"default:'USER'" json:"role"` // USER, GUARDIAN, ADMIN
	SubscriptionTier string     `gorm:"type:varchar(20);default:'FREE'" json:"subscriptionTier"`
	Birthdate        *time.Time `json:"birthdate"` // nil when not provided; age-gated checks fail closed
	GuardianID       *uint      `gorm:"index" json:"guardianId"`
	TradingMode      string     `gorm:"type:varchar(10);default:'PAPER'" json:"tradingMode"`
	LastLogin        time.Time  `gorm:"default:NULL" json:"lastLogin"`
	IsDeleted        bool       `gorm:"default:false" json:"isDeleted"`
}

// tierRank orders subscription tiers for entitlement comparison
var tierRank = map[string]int{
	TierFree:    0,
	TierBasic:   1,
	TierPremium: 2,
}

// TierRank returns the ordinal of a subscription tier, -1 for unknown tiers
func TierRank(tier string) int {
	rank, ok := tierRank[tier]
	if !ok {
		return -1
	}
	return rank
}

// AgeAt returns the user's age at the given time. ok is false when the
// birthdate is unknown.
func (u *User) AgeAt(now time.Time) (age int, ok bool) {
	if u.Birthdate == nil {
		return 0, false
	}
	b := *u.Birthdate
	age = now.Year() - b.Year()
	if now.Month() < b.Month() || (now.Month() == b.Month() && now.Day() < b.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age, true
}

// IsMinorAt reports whether the user must be treated as a minor. An unknown
// birthdate counts as minor so guardian checks fail closed.
func (u *User) IsMinorAt(now time.Time) bool {
	age, ok := u.AgeAt(now)
	if !ok {
		return true
	}
	return age < AdultAge
}
