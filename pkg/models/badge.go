// Package models - Badge and Achievement types
// Badge definitions live in a static catalog (pkg/badges); per-user unlock
// state is the only thing persisted.
package models

import (
	"time"
)

// BadgeCategory is a closed set; the category decides which evaluation rule
// the achievement engine applies. Adding a category means touching the
// engine's switch, which is the point.
type BadgeCategory string

const (
	CategoryStreak      BadgeCategory = "streak"      // current streak length
	CategoryPages       BadgeCategory = "pages"       // cumulative pages read
	CategoryBooks       BadgeCategory = "books"       // books completed
	CategorySpeed       BadgeCategory = "speed"       // pages read today
	CategoryConsistency BadgeCategory = "consistency" // multi-week patterns
	CategorySpecial     BadgeCategory = "special"     // time-of-day, weekend, social
)

// Badge rarity tiers, ordered common < rare < epic < legendary
const (
	RarityCommon    = "common"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

// RarityRank maps a rarity to its ordinal for sorting
var RarityRank = map[string]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
}

// BadgeDefinition is one entry of the static catalog. IDs are unique and
// immutable across the catalog's lifetime.
type BadgeDefinition struct {
	ID            string        `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Description   string        `json:"description" yaml:"description"`
	Icon          string        `json:"icon" yaml:"icon"` // emoji
	Category      BadgeCategory `json:"category" yaml:"category"`
	Requirement   int           `json:"requirement" yaml:"requirement"`
	Rarity        string        `json:"rarity" yaml:"rarity"`
	UnlockMessage string        `json:"unlock_message" yaml:"unlock_message"`
}

// UserBadge joins a user to an unlocked badge. At most one row per
// (user, badge) pair; unlocking is monotonic and permanent.
type UserBadge struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	BadgeID    string    `json:"badge_id" db:"badge_id"`
	UnlockedAt time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// UnlockedBadge is the notification payload for a freshly unlocked badge
type UnlockedBadge struct {
	BadgeID       string `json:"badge_id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	UnlockMessage string `json:"unlock_message"`
	Rarity        string `json:"rarity"`
}

// BadgeWithStatus is a catalog entry decorated with the caller's state
type BadgeWithStatus struct {
	BadgeDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   int        `json:"progress"` // 0-100
}

// ValidBadgeCategory reports whether c is a known category.
func ValidBadgeCategory(c BadgeCategory) bool {
	switch c {
	case CategoryStreak, CategoryPages, CategoryBooks, CategorySpeed, CategoryConsistency, CategorySpecial:
		return true
	}
	return false
}
