package services

import (
	"errors"
	"log"
	"time"

	"pet-empire-bot/config"
	"pet-empire-bot/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService struct {
	DB  *gorm.DB
	Cfg *config.GameConfig
}

// NewAchievementService wraps a DB handle; pass a transaction when progress
// must commit atomically with the triggering event.
func NewAchievementService(db *gorm.DB, cfg *config.GameConfig) *AchievementService {
	return &AchievementService{DB: db, Cfg: cfg}
}

// Seed inserts the built-in achievement definitions once.
func (s *AchievementService) Seed() error {
	var count int64
	if err := s.DB.Model(&models.Achievement{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, def := range models.AchievementSeed {
		def.ID = uuid.NewString()
		if err := s.DB.Create(&def).Error; err != nil {
			return err
		}
	}
	log.Printf("✅ Seeded %d achievements", len(models.AchievementSeed))
	return nil
}

// Record adds increment to every definition tracking this metric and grants
// rewards for thresholds crossed in this call. Completed progress is never
// touched again; rewards are granted exactly once. Reward coins/stars are
// credited onto the caller's user struct, which the caller persists along
// with the rest of the event. Returns the definitions newly completed here
// so the caller can notify the user.
func (s *AchievementService) Record(user *models.User, metric string, increment int64) ([]models.Achievement, error) {
	return s.record(user, metric, func(current int64) int64 {
		return current + increment
	})
}

// RecordHighWater raises the counter to value if that is higher. Used for
// metrics that report an absolute reading (e.g. level reached) rather than
// an event count.
func (s *AchievementService) RecordHighWater(user *models.User, metric string, value int64) ([]models.Achievement, error) {
	return s.record(user, metric, func(current int64) int64 {
		if value > current {
			return value
		}
		return current
	})
}

func (s *AchievementService) record(user *models.User, metric string, advance func(int64) int64) ([]models.Achievement, error) {
	var defs []models.Achievement
	if err := s.DB.Where("metric = ?", metric).Find(&defs).Error; err != nil {
		return nil, err
	}

	var newlyCompleted []models.Achievement
	for _, def := range defs {
		var progress models.AchievementProgress
		err := s.DB.Where("user_id = ? AND achievement_id = ?", user.UserID, def.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.AchievementProgress{
				ID:            uuid.NewString(),
				UserID:        user.UserID,
				AchievementID: def.ID,
			}
		} else if err != nil {
			return nil, err
		}

		if progress.Completed {
			continue
		}

		progress.CurrentValue = advance(progress.CurrentValue)

		if progress.CurrentValue >= def.Threshold {
			now := time.Now()
			progress.Completed = true
			progress.CompletedAt = &now

			user.Coins += def.RewardCoins
			user.Stars += def.RewardStars

			newlyCompleted = append(newlyCompleted, def)
			log.Printf("🏅 User %d completed achievement: %s", user.UserID, def.Name)
		}

		if err := s.DB.Save(&progress).Error; err != nil {
			return nil, err
		}
	}

	return newlyCompleted, nil
}

// AchievementEntry pairs a definition with the user's progress (nil if the
// user has never advanced it).
type AchievementEntry struct {
	Achievement models.Achievement          `json:"achievement"`
	Progress    *models.AchievementProgress `json:"progress,omitempty"`
}

// List returns definitions with the user's progress, optionally filtered by
// category or completion.
func (s *AchievementService) List(userID int64, category string, completedOnly bool) ([]AchievementEntry, error) {
	q := s.DB.Model(&models.Achievement{}).Order("key")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var defs []models.Achievement
	if err := q.Find(&defs).Error; err != nil {
		return nil, err
	}

	entries := make([]AchievementEntry, 0, len(defs))
	for _, def := range defs {
		var progress models.AchievementProgress
		err := s.DB.Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&progress).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if completedOnly {
				continue
			}
			entries = append(entries, AchievementEntry{Achievement: def})
		case err != nil:
			return nil, err
		default:
			if completedOnly && !progress.Completed {
				continue
			}
			entries = append(entries, AchievementEntry{Achievement: def, Progress: &progress})
		}
	}
	return entries, nil
}

// Stats summarizes completion for a user.
func (s *AchievementService) Stats(userID int64) (map[string]any, error) {
	var total, completed int64
	if err := s.DB.Model(&models.Achievement{}).Count(&total).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.AchievementProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}
	return map[string]any{
		"total":           total,
		"completed":       completed,
		"completion_rate": rate,
	}, nil
}
