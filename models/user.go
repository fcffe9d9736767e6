package models

import (
	"time"
)

// User is keyed by the chat platform's user id. The gateway is trusted to
// resolve identity before requests reach this service.
type User struct {
	UserID    int64   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Username  *string `gorm:"size:255" json:"username,omitempty"`
	FirstName *string `gorm:"size:255" json:"first_name,omitempty"`

	// Game progress
	Level int   `gorm:"default:1" json:"level"`
	Exp   int64 `gorm:"default:0" json:"exp"`
	Coins int64 `gorm:"default:0" json:"coins"`
	Stars int64 `gorm:"default:0" json:"stars"`

	// Capacity
	PetSlots     int `gorm:"default:5" json:"pet_slots"`
	MaxDefenders int `gorm:"default:3" json:"max_defenders"`

	// Raid stats
	RaidsWon       int        `gorm:"default:0" json:"raids_won"`
	RaidsLost      int        `gorm:"default:0" json:"raids_lost"`
	DefensesWon    int        `gorm:"default:0" json:"defenses_won"`
	DefensesLost   int        `gorm:"default:0" json:"defenses_lost"`
	FreeRaidsToday int        `gorm:"default:0" json:"free_raids_today"`
	LastRaidReset  *time.Time `json:"last_raid_reset,omitempty"`
	ShieldUntil    *time.Time `json:"shield_until,omitempty"`

	// Traps owned, keyed by trap type: {"basic_wall": 2}
	Traps map[TrapType]int `gorm:"serializer:json" json:"traps"`

	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastActive time.Time `gorm:"autoUpdateTime" json:"last_active"`
}

// Shielded reports whether the user cannot be raided right now.
func (u *User) Shielded(now time.Time) bool {
	return u.ShieldUntil != nil && u.ShieldUntil.After(now)
}

// TrapLevel returns the owned level for a trap type (0 if none).
func (u *User) TrapLevel(t TrapType) int {
	if u.Traps == nil {
		return 0
	}
	return u.Traps[t]
}
