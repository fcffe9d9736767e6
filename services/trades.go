package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pet-empire-bot/config"
	"pet-empire-bot/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TradeService struct {
	DB  *gorm.DB
	Cfg *config.GameConfig
}

func NewTradeService(db *gorm.DB, cfg *config.GameConfig) *TradeService {
	return &TradeService{DB: db, Cfg: cfg}
}

// Offer opens a pending trade. Stakes are validated at offer time and again
// at acceptance; nothing moves until the receiver accepts.
func (s *TradeService) Offer(senderID, receiverID int64, senderPetIDs, receiverPetIDs []string, senderCoins, receiverCoins int64) (*models.Trade, error) {
	if senderID == receiverID {
		return nil, Validationf("you cannot trade with yourself")
	}
	if senderCoins < 0 || receiverCoins < 0 {
		return nil, Validationf("coin amounts cannot be negative")
	}
	if len(senderPetIDs)+len(receiverPetIDs) == 0 && senderCoins == 0 && receiverCoins == 0 {
		return nil, Validationf("trade offer is empty")
	}

	var created *models.Trade
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var sender, receiver models.User
		if err := tx.Where("user_id = ?", senderID).First(&sender).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", senderID, ErrNotFound)
			}
			return err
		}
		if err := tx.Where("user_id = ?", receiverID).First(&receiver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", receiverID, ErrNotFound)
			}
			return err
		}

		if sender.Coins < senderCoins {
			return Validationf("not enough coins: need %d, have %d", senderCoins, sender.Coins)
		}
		if err := validateTradePets(tx, senderID, senderPetIDs); err != nil {
			return err
		}
		if err := validateTradePets(tx, receiverID, receiverPetIDs); err != nil {
			return err
		}

		trade := models.Trade{
			ID:             uuid.NewString(),
			SenderID:       senderID,
			ReceiverID:     receiverID,
			SenderPetIDs:   senderPetIDs,
			ReceiverPetIDs: receiverPetIDs,
			SenderCoins:    senderCoins,
			ReceiverCoins:  receiverCoins,
			Status:         models.TradePending,
			ExpiresAt:      time.Now().Add(s.Cfg.TradeTTL),
		}
		if err := tx.Create(&trade).Error; err != nil {
			return err
		}
		created = &trade
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🤝 Trade %s offered: %d -> %d", created.ID, senderID, receiverID)
	return created, nil
}

// validateTradePets checks the listed pets belong to the owner and are
// idle. A pet on a mission or defending cannot be staked.
func validateTradePets(tx *gorm.DB, ownerID int64, petIDs []string) error {
	for _, petID := range petIDs {
		var pet models.Pet
		if err := tx.Where("id = ? AND owner_id = ?", petID, ownerID).First(&pet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Validationf("pet %s is not owned by user %d", petID, ownerID)
			}
			return err
		}
		if pet.Activity != models.ActivityIdle {
			return Validationf("pet %s is busy", petID)
		}
	}
	return nil
}

// Accept settles a pending trade: coins move with a commission taken from
// each leg, pets change owners, both parties log a completed trade.
func (s *TradeService) Accept(receiverID int64, tradeID string) (*models.Trade, error) {
	var accepted *models.Trade
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var trade models.Trade
		if err := tx.Where("id = ?", tradeID).First(&trade).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("trade %s: %w", tradeID, ErrNotFound)
			}
			return err
		}
		if trade.ReceiverID != receiverID {
			return Validationf("trade is not addressed to you")
		}
		if trade.Status != models.TradePending {
			return Validationf("trade is not pending")
		}
		if time.Now().After(trade.ExpiresAt) {
			return Validationf("trade has expired")
		}

		var sender, receiver models.User
		if err := tx.Where("user_id = ?", trade.SenderID).First(&sender).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", trade.ReceiverID).First(&receiver).Error; err != nil {
			return err
		}

		if sender.Coins < trade.SenderCoins {
			return Validationf("sender no longer has %d coins", trade.SenderCoins)
		}
		if receiver.Coins < trade.ReceiverCoins {
			return Validationf("not enough coins: need %d, have %d", trade.ReceiverCoins, receiver.Coins)
		}
		if err := validateTradePets(tx, trade.SenderID, trade.SenderPetIDs); err != nil {
			return err
		}
		if err := validateTradePets(tx, trade.ReceiverID, trade.ReceiverPetIDs); err != nil {
			return err
		}

		// Coins move minus commission on each leg.
		commission := s.Cfg.TradeCommission
		sender.Coins -= trade.SenderCoins
		receiver.Coins += trade.SenderCoins - int64(float64(trade.SenderCoins)*commission)
		receiver.Coins -= trade.ReceiverCoins
		sender.Coins += trade.ReceiverCoins - int64(float64(trade.ReceiverCoins)*commission)

		for _, petID := range trade.SenderPetIDs {
			if err := movePetForTrade(tx, petID, trade.ReceiverID); err != nil {
				return err
			}
		}
		for _, petID := range trade.ReceiverPetIDs {
			if err := movePetForTrade(tx, petID, trade.SenderID); err != nil {
				return err
			}
		}

		if !trade.Status.CanTransitionTo(models.TradeAccepted) {
			return fmt.Errorf("illegal trade transition %s -> accepted", trade.Status)
		}
		now := time.Now()
		trade.Status = models.TradeAccepted
		trade.CompletedAt = &now
		if err := tx.Save(&trade).Error; err != nil {
			return err
		}

		ach := NewAchievementService(tx, s.Cfg)
		if _, err := ach.Record(&sender, models.MetricTradesCompleted, 1); err != nil {
			return err
		}
		if _, err := ach.Record(&receiver, models.MetricTradesCompleted, 1); err != nil {
			return err
		}

		// Saved last so the coin legs and any achievement rewards land in
		// one write per user.
		if err := tx.Save(&sender).Error; err != nil {
			return err
		}
		if err := tx.Save(&receiver).Error; err != nil {
			return err
		}

		accepted = &trade
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Trade %s accepted", tradeID)
	return accepted, nil
}

func movePetForTrade(tx *gorm.DB, petID string, newOwnerID int64) error {
	var pet models.Pet
	if err := tx.Where("id = ?", petID).First(&pet).Error; err != nil {
		return err
	}
	ok, err := transferPet(tx, &pet, newOwnerID, "trade")
	if err != nil {
		return err
	}
	if !ok {
		return Validationf("user %d has no free pet slots", newOwnerID)
	}
	return nil
}

// Decline rejects a pending trade. Either party may decline.
func (s *TradeService) Decline(userID int64, tradeID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var trade models.Trade
		if err := tx.Where("id = ?", tradeID).First(&trade).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("trade %s: %w", tradeID, ErrNotFound)
			}
			return err
		}
		if trade.SenderID != userID && trade.ReceiverID != userID {
			return Validationf("trade does not involve you")
		}
		if !trade.Status.CanTransitionTo(models.TradeDeclined) {
			return Validationf("trade is not pending")
		}
		trade.Status = models.TradeDeclined
		return tx.Save(&trade).Error
	})
}

// ExpireDue flips pending trades past their deadline to expired,
// log-and-continue per item.
func (s *TradeService) ExpireDue() int {
	var due []models.Trade
	if err := s.DB.Where("status = ? AND expires_at <= ?", models.TradePending, time.Now()).
		Find(&due).Error; err != nil {
		log.Printf("❌ [Sweep] failed to list expiring trades: %v", err)
		return 0
	}

	expired := 0
	for _, trade := range due {
		if !trade.Status.CanTransitionTo(models.TradeExpired) {
			continue
		}
		trade.Status = models.TradeExpired
		if err := s.DB.Save(&trade).Error; err != nil {
			log.Printf("❌ [Sweep] failed to expire trade %s: %v", trade.ID, err)
			continue
		}
		expired++
	}
	if expired > 0 {
		log.Printf("🧹 [Sweep] expired %d trade(s)", expired)
	}
	return expired
}

// List returns trades where the user is sender or receiver.
func (s *TradeService) List(userID int64) ([]models.Trade, error) {
	var trades []models.Trade
	err := s.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&trades).Error
	return trades, err
}
