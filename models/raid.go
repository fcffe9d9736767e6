package models

import (
	"time"
)

// RaidResult is the outcome from the attacker's perspective.
type RaidResult string

const (
	RaidWin  RaidResult = "win"
	RaidLose RaidResult = "lose"
)

// TrapType identifies a purchasable defensive trap.
type TrapType string

const (
	TrapBasicWall     TrapType = "basic_wall"
	TrapAlarm         TrapType = "alarm"
	TrapElectricFence TrapType = "electric_fence"
	TrapLaserGrid     TrapType = "laser_grid"
)

// Raid is an append-only battle log entry. Rows are never mutated after
// creation; cooldown checks query the most recent row per (attacker, defender).
type Raid struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	AttackerID int64  `gorm:"index;not null" json:"attacker_id"`
	DefenderID int64  `gorm:"index;not null" json:"defender_id"`

	AttackerPower int `json:"attacker_power"`
	DefenderPower int `json:"defender_power"`

	Result      RaidResult `gorm:"size:20" json:"result"`
	StolenPetID *string    `gorm:"type:uuid" json:"stolen_pet_id,omitempty"`

	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
