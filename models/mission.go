package models

import (
	"time"
)

// MissionType is the mission tier tag.
type MissionType string

const (
	MissionQuick  MissionType = "quick"
	MissionMedium MissionType = "medium"
	MissionLong   MissionType = "long"
	MissionEpic   MissionType = "epic"
)

// MissionStatus is a one-directional state machine:
// active -> completed | failed | cancelled. Terminal states never reopen.
type MissionStatus string

const (
	MissionActive    MissionStatus = "active"
	MissionCompleted MissionStatus = "completed"
	MissionFailed    MissionStatus = "failed"
	MissionCancelled MissionStatus = "cancelled"
)

// CanTransitionTo reports whether moving to next is a legal transition.
func (s MissionStatus) CanTransitionTo(next MissionStatus) bool {
	if s != MissionActive {
		return false
	}
	switch next {
	case MissionCompleted, MissionFailed, MissionCancelled:
		return true
	}
	return false
}

func (s MissionStatus) Terminal() bool {
	return s != MissionActive
}

type Mission struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID int64  `gorm:"index;not null" json:"user_id"`
	PetID  string `gorm:"index;not null;type:uuid" json:"pet_id"`

	MissionType MissionType `gorm:"size:50" json:"mission_type"`
	MissionName string      `gorm:"size:200" json:"mission_name"`

	StartedAt  time.Time `json:"started_at"`
	CompleteAt time.Time `gorm:"index" json:"complete_at"`

	RewardCoins int64 `json:"reward_coins"`
	RewardExp   int64 `json:"reward_exp"`

	Status MissionStatus `gorm:"size:20;default:'active';index" json:"status"`
}

// Due reports whether the mission's timer has elapsed.
func (m *Mission) Due(now time.Time) bool {
	return !m.CompleteAt.After(now)
}
