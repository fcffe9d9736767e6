package services

import (
	"errors"
	"fmt"
	"log"

	"pet-empire-bot/config"
	"pet-empire-bot/game"
	"pet-empire-bot/models"

	"gorm.io/gorm"
)

type UserService struct {
	DB  *gorm.DB
	Cfg *config.GameConfig
}

func NewUserService(db *gorm.DB, cfg *config.GameConfig) *UserService {
	return &UserService{DB: db, Cfg: cfg}
}

// GetOrCreate looks up the user by chat id, creating it with the starting
// economy on first contact. Username/first name are refreshed on every call.
func (s *UserService) GetOrCreate(userID int64, username, firstName *string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			UserID:         userID,
			Username:       username,
			FirstName:      firstName,
			Level:          1,
			Coins:          s.Cfg.StartingCoins,
			PetSlots:       s.Cfg.StartingSlots,
			MaxDefenders:   s.Cfg.MaxDefenders,
			FreeRaidsToday: s.Cfg.DailyFreeRaids,
			Traps:          map[models.TrapType]int{},
		}
		if err := s.DB.Create(&user).Error; err != nil {
			return nil, err
		}
		log.Printf("👋 New user registered: %d", userID)
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	if username != nil || firstName != nil {
		user.Username = username
		user.FirstName = firstName
		if err := s.DB.Save(&user).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// Get loads a user or reports not-found.
func (s *UserService) Get(userID int64) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// addExperience advances the user's own level track on the same exponential
// curve as pets. Must run inside the caller's transaction; the caller saves.
func addExperience(tx *gorm.DB, cfg *config.GameConfig, user *models.User, exp int64) (levelsGained int, err error) {
	user.Exp += exp
	for user.Exp >= game.ExpForNextLevel(cfg, user.Level) {
		user.Exp -= game.ExpForNextLevel(cfg, user.Level)
		user.Level++
		levelsGained++
	}
	if levelsGained > 0 {
		ach := NewAchievementService(tx, cfg)
		if _, err := ach.RecordHighWater(user, models.MetricLevelReached, int64(user.Level)); err != nil {
			return levelsGained, err
		}
	}
	return levelsGained, nil
}

// Leaderboard returns the top users ordered by the requested column.
func (s *UserService) Leaderboard(by string, limit int) ([]models.User, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	order := ""
	switch by {
	case "coins", "":
		order = "coins DESC"
	case "level":
		order = "level DESC, exp DESC"
	case "raids":
		order = "raids_won DESC"
	default:
		return nil, Validationf("unknown leaderboard: %s", by)
	}

	var users []models.User
	if err := s.DB.Order(order).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
