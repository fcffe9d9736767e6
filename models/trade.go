package models

import (
	"time"
)

// TradeStatus is a one-directional state machine:
// pending -> accepted | declined | expired.
type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeDeclined TradeStatus = "declined"
	TradeExpired  TradeStatus = "expired"
)

// CanTransitionTo reports whether moving to next is a legal transition.
func (s TradeStatus) CanTransitionTo(next TradeStatus) bool {
	if s != TradePending {
		return false
	}
	switch next {
	case TradeAccepted, TradeDeclined, TradeExpired:
		return true
	}
	return false
}

// Trade is a two-sided offer: each party stakes pets and/or coins. A
// commission is taken from each coin leg when the trade settles.
type Trade struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	SenderID   int64 `gorm:"index;not null" json:"sender_id"`
	ReceiverID int64 `gorm:"index;not null" json:"receiver_id"`

	SenderPetIDs   []string `gorm:"serializer:json" json:"sender_pet_ids"`
	ReceiverPetIDs []string `gorm:"serializer:json" json:"receiver_pet_ids"`
	SenderCoins    int64    `gorm:"default:0" json:"sender_coins"`
	ReceiverCoins  int64    `gorm:"default:0" json:"receiver_coins"`

	Status TradeStatus `gorm:"size:20;default:'pending';index" json:"status"`

	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt   time.Time  `gorm:"index" json:"expires_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
