package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"pet-empire-bot/config"
	"pet-empire-bot/game"
	"pet-empire-bot/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MissionService struct {
	DB  *gorm.DB
	Cfg *config.GameConfig
	Rng game.RandomSource
}

func NewMissionService(db *gorm.DB, cfg *config.GameConfig, rng game.RandomSource) *MissionService {
	if rng == nil {
		rng = game.DefaultRNG()
	}
	return &MissionService{DB: db, Cfg: cfg, Rng: rng}
}

// MissionOutcome is the resolved result handed back for rendering.
type MissionOutcome struct {
	Success bool                `json:"success"`
	Coins   int64               `json:"coins"`
	Exp     int64               `json:"exp"`
	LevelUp game.LevelUpResult  `json:"level_up"`
	Mission *models.Mission     `json:"mission"`
	Awarded []models.Achievement `json:"awarded,omitempty"`
}

// Start sends a pet on a mission. Rewards are locked in at start time from
// the pet's level and rarity; the pet is busy until the mission resolves.
func (s *MissionService) Start(userID int64, petID string, tier models.MissionType) (*models.Mission, error) {
	var created *models.Mission
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var pet models.Pet
		if err := tx.Where("id = ? AND owner_id = ?", petID, userID).First(&pet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pet %s: %w", petID, ErrNotFound)
			}
			return err
		}

		info, ok := s.Cfg.Missions[tier]
		if !ok {
			return Validationf("unknown mission type: %s", tier)
		}

		now := time.Now()
		switch {
		case pet.Activity == models.ActivityMission:
			return Validationf("pet is already on a mission")
		case pet.Activity == models.ActivityDefending:
			return Validationf("pet is currently defending")
		case pet.Fatigued(now):
			return Validationf("pet is too tired")
		}

		reward := game.MissionRewards(s.Cfg, tier, pet.Level, pet.Rarity)

		names := s.Cfg.MissionNames[tier]
		name := string(tier)
		if len(names) > 0 {
			name = names[s.Rng.IntN(len(names))]
		}

		mission := models.Mission{
			ID:          uuid.NewString(),
			UserID:      userID,
			PetID:       pet.ID,
			MissionType: tier,
			MissionName: name,
			StartedAt:   now,
			CompleteAt:  now.Add(info.Duration),
			RewardCoins: reward.Coins,
			RewardExp:   reward.Exp,
			Status:      models.MissionActive,
		}
		if err := tx.Create(&mission).Error; err != nil {
			return err
		}

		pet.Activity = models.ActivityMission
		if err := tx.Save(&pet).Error; err != nil {
			return err
		}

		created = &mission
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🚀 Mission %s started for pet %s", created.ID, petID)
	return created, nil
}

// Resolve settles a due mission: draws success, pays out, routes pet exp
// through progression and frees the pet. Terminal either way.
func (s *MissionService) Resolve(missionID string) (*MissionOutcome, error) {
	var outcome *MissionOutcome
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Where("id = ?", missionID).First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("mission %s: %w", missionID, ErrNotFound)
			}
			return err
		}
		result, err := s.resolveTx(tx, &mission)
		if err != nil {
			return err
		}
		outcome = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (s *MissionService) resolveTx(tx *gorm.DB, mission *models.Mission) (*MissionOutcome, error) {
	now := time.Now()
	if mission.Status != models.MissionActive {
		return nil, Validationf("mission is not active")
	}
	if !mission.Due(now) {
		return nil, Validationf("mission is not finished yet")
	}

	var pet models.Pet
	if err := tx.Where("id = ?", mission.PetID).First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pet %s: %w", mission.PetID, ErrNotFound)
		}
		return nil, err
	}
	var user models.User
	if err := tx.Where("user_id = ?", mission.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", mission.UserID, ErrNotFound)
		}
		return nil, err
	}

	chance := game.MissionSuccessChance(s.Cfg, mission.MissionType, pet.Stamina, pet.Level)
	success := s.Rng.Float64() < chance

	pets := NewPetService(tx, s.Cfg, s.Rng)
	ach := NewAchievementService(tx, s.Cfg)
	outcome := &MissionOutcome{Mission: mission}

	if success {
		user.Coins += mission.RewardCoins
		if _, err := addExperience(tx, s.Cfg, &user, mission.RewardExp/s.Cfg.UserExpShare); err != nil {
			return nil, err
		}

		levelUp, err := pets.addPetExperience(tx, &pet, &user, mission.RewardExp)
		if err != nil {
			return nil, err
		}

		if err := s.setStatus(tx, mission, models.MissionCompleted); err != nil {
			return nil, err
		}

		awarded, err := ach.Record(&user, models.MetricMissionsCompleted, 1)
		if err != nil {
			return nil, err
		}
		more, err := ach.Record(&user, models.MetricCoinsEarned, mission.RewardCoins)
		if err != nil {
			return nil, err
		}

		outcome.Success = true
		outcome.Coins = mission.RewardCoins
		outcome.Exp = mission.RewardExp
		outcome.LevelUp = levelUp
		outcome.Awarded = append(awarded, more...)
		log.Printf("✅ Mission %s completed (chance %.2f)", mission.ID, chance)
	} else {
		reduced := int64(float64(mission.RewardCoins) * s.Cfg.FailPayoutShare)
		user.Coins += reduced

		fatigue := now.Add(s.Cfg.MissionFatigue)
		pet.FatigueUntil = &fatigue

		if err := s.setStatus(tx, mission, models.MissionFailed); err != nil {
			return nil, err
		}

		awarded, err := ach.Record(&user, models.MetricCoinsEarned, reduced)
		if err != nil {
			return nil, err
		}

		outcome.Success = false
		outcome.Coins = reduced
		outcome.Awarded = awarded
		log.Printf("💤 Mission %s failed (chance %.2f)", mission.ID, chance)
	}

	pet.Activity = models.ActivityIdle
	if err := tx.Save(&pet).Error; err != nil {
		return nil, err
	}
	if err := tx.Save(&user).Error; err != nil {
		return nil, err
	}
	return outcome, nil
}

// Collect resolves a due mission on the owner's request.
func (s *MissionService) Collect(userID int64, missionID string) (*MissionOutcome, error) {
	var outcome *MissionOutcome
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Where("id = ? AND user_id = ?", missionID, userID).First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("mission %s: %w", missionID, ErrNotFound)
			}
			return err
		}
		result, err := s.resolveTx(tx, &mission)
		if err != nil {
			return err
		}
		outcome = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// setStatus applies a transition after validating it against the state
// machine; an illegal transition is a programming error, not user input.
func (s *MissionService) setStatus(tx *gorm.DB, mission *models.Mission, next models.MissionStatus) error {
	if !mission.Status.CanTransitionTo(next) {
		return fmt.Errorf("illegal mission transition %s -> %s", mission.Status, next)
	}
	mission.Status = next
	return tx.Save(mission).Error
}

// Cancel aborts an active mission. The pet comes home tired.
func (s *MissionService) Cancel(userID int64, missionID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Where("id = ? AND user_id = ?", missionID, userID).First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("mission %s: %w", missionID, ErrNotFound)
			}
			return err
		}
		if mission.Status != models.MissionActive {
			return Validationf("mission is not active")
		}

		var pet models.Pet
		if err := tx.Where("id = ?", mission.PetID).First(&pet).Error; err == nil {
			fatigue := time.Now().Add(s.Cfg.MissionFatigue)
			pet.Activity = models.ActivityIdle
			pet.FatigueUntil = &fatigue
			if err := tx.Save(&pet).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return s.setStatus(tx, &mission, models.MissionCancelled)
	})
}

// SkipAhead buys out the remaining mission time with stars. The mission
// becomes due immediately; collection still goes through Resolve.
func (s *MissionService) SkipAhead(userID int64, missionID string) (int64, error) {
	var cost int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var mission models.Mission
		if err := tx.Where("id = ? AND user_id = ?", missionID, userID).First(&mission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("mission %s: %w", missionID, ErrNotFound)
			}
			return err
		}
		if mission.Status != models.MissionActive {
			return Validationf("mission is not active")
		}

		var user models.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			return err
		}

		now := time.Now()
		cost = game.SkipAheadCost(s.Cfg, mission.CompleteAt.Sub(now))
		if user.Stars < cost {
			return Validationf("not enough stars: need %d, have %d", cost, user.Stars)
		}

		user.Stars -= cost
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		mission.CompleteAt = now
		return tx.Save(&mission).Error
	})
	if err != nil {
		return 0, err
	}
	log.Printf("⏩ Mission %s skipped ahead for %d stars", missionID, cost)
	return cost, nil
}

// ResolveDue is the sweep entry point: every active mission past its timer
// is resolved in its own transaction. One bad record is logged and skipped,
// never aborting the rest of the batch.
func (s *MissionService) ResolveDue() int {
	var due []models.Mission
	if err := s.DB.Where("status = ? AND complete_at <= ?", models.MissionActive, time.Now()).
		Find(&due).Error; err != nil {
		log.Printf("❌ [Sweep] failed to list due missions: %v", err)
		return 0
	}

	resolved := 0
	for _, mission := range due {
		if _, err := s.Resolve(mission.ID); err != nil {
			log.Printf("❌ [Sweep] failed to resolve mission %s: %v", mission.ID, err)
			continue
		}
		resolved++
	}
	if resolved > 0 {
		log.Printf("🧹 [Sweep] resolved %d mission(s)", resolved)
	}
	return resolved
}

// List returns a user's missions, optionally filtered by status.
func (s *MissionService) List(userID int64, status models.MissionStatus) ([]models.Mission, error) {
	q := s.DB.Where("user_id = ?", userID).Order("complete_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var missions []models.Mission
	err := q.Find(&missions).Error
	return missions, err
}
