package models

import (
	"time"
)

// Rarity is the ordered pet rarity tier.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythical  Rarity = "Mythical"
)

// RarityOrder lists rarities from most to least common.
var RarityOrder = []Rarity{
	RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary, RarityMythical,
}

// Rank returns the position of the rarity in RarityOrder (Common=0).
// Unknown rarities rank as Common.
func (r Rarity) Rank() int {
	for i, known := range RarityOrder {
		if r == known {
			return i
		}
	}
	return 0
}

func (r Rarity) Valid() bool {
	for _, known := range RarityOrder {
		if r == known {
			return true
		}
	}
	return false
}

// EggType is the acquisition tier a pet is hatched from.
type EggType string

const (
	EggCommon    EggType = "common"
	EggRare      EggType = "rare"
	EggEpic      EggType = "epic"
	EggLegendary EggType = "legendary"
	EggMythical  EggType = "mythical"
)

// PetActivity replaces the old is_on_mission / is_defending flag pair with a
// single mutually-exclusive state, so a pet can never be both at once.
type PetActivity string

const (
	ActivityIdle      PetActivity = "idle"
	ActivityMission   PetActivity = "mission"
	ActivityDefending PetActivity = "defending"
)

type Pet struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID int64  `gorm:"index;not null" json:"owner_id"`

	Name    string `gorm:"size:100" json:"name"`
	Species string `gorm:"size:50" json:"species"`
	Rarity  Rarity `gorm:"size:20;index" json:"rarity"`
	Emoji   string `gorm:"size:10;default:'🐾'" json:"emoji"`

	// Stats
	Level         int   `gorm:"default:1" json:"level"`
	Exp           int64 `gorm:"default:0" json:"exp"`
	Power         int   `json:"power"`
	IncomePerHour int   `json:"income_per_hour"`
	Stamina       int   `gorm:"default:100" json:"stamina"`
	Loyalty       int   `gorm:"default:50" json:"loyalty"`

	// Status
	Activity     PetActivity `gorm:"size:20;default:'idle';index" json:"activity"`
	FatigueUntil *time.Time  `json:"fatigue_until,omitempty"`

	EvolutionStage int  `gorm:"default:0" json:"evolution_stage"`
	IsShiny        bool `gorm:"default:false" json:"is_shiny"`

	ObtainedFrom string    `gorm:"size:50;default:'egg'" json:"obtained_from"` // egg, raid, trade, reward
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Fatigued reports whether the pet is blocked from missions and raids.
func (p *Pet) Fatigued(now time.Time) bool {
	return p.FatigueUntil != nil && p.FatigueUntil.After(now)
}

// Available reports whether the pet is idle and rested.
func (p *Pet) Available(now time.Time) bool {
	return p.Activity == ActivityIdle && !p.Fatigued(now)
}
