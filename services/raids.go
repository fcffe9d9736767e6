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

type RaidService struct {
	DB  *gorm.DB
	Cfg *config.GameConfig
	Rng game.RandomSource
}

func NewRaidService(db *gorm.DB, cfg *config.GameConfig, rng game.RandomSource) *RaidService {
	if rng == nil {
		rng = game.DefaultRNG()
	}
	return &RaidService{DB: db, Cfg: cfg, Rng: rng}
}

// RaidOutcome is the settled result handed back for rendering.
type RaidOutcome struct {
	Success       bool        `json:"success"`
	AttackPower   int         `json:"attack_power"`
	DefensePower  int         `json:"defense_power"`
	WinChance     float64     `json:"win_chance"`
	StolenPet     *models.Pet `json:"stolen_pet,omitempty"`
	Raid          models.Raid `json:"raid"`
}

// resetDailyRaids refills the free-raid counter the first time a new
// calendar date is observed for this user. Runs in the caller's tx.
func (s *RaidService) resetDailyRaids(tx *gorm.DB, user *models.User, now time.Time) error {
	if user.LastRaidReset == nil {
		reset := now
		user.LastRaidReset = &reset
		return tx.Save(user).Error
	}
	y1, m1, d1 := user.LastRaidReset.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return nil
	}
	reset := now
	user.FreeRaidsToday = s.Cfg.DailyFreeRaids
	user.LastRaidReset = &reset
	return tx.Save(user).Error
}

// canRaid checks every precondition for attacker -> defender. The cooldown
// keys on the ordered pair; the free-raid counter is global per attacker.
func (s *RaidService) canRaid(tx *gorm.DB, attacker *models.User, defenderID int64, now time.Time) error {
	if attacker.UserID == defenderID {
		return Validationf("you cannot raid yourself")
	}

	if err := s.resetDailyRaids(tx, attacker, now); err != nil {
		return err
	}
	if attacker.FreeRaidsToday <= 0 {
		return Validationf("no free raids left today")
	}

	var lastRaid models.Raid
	err := tx.Where("attacker_id = ? AND defender_id = ? AND timestamp > ?",
		attacker.UserID, defenderID, now.Add(-s.Cfg.RaidCooldown)).
		Order("timestamp DESC").
		First(&lastRaid).Error
	if err == nil {
		left := lastRaid.Timestamp.Add(s.Cfg.RaidCooldown).Sub(now)
		return Validationf("target on cooldown for %s", left.Round(time.Minute))
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var defender models.User
	if err := tx.Where("user_id = ?", defenderID).First(&defender).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", defenderID, ErrNotFound)
		}
		return err
	}
	if defender.Shielded(now) {
		left := defender.ShieldUntil.Sub(now)
		return Validationf("target is shielded for %s", left.Round(time.Minute))
	}

	return nil
}

// CheckEligibility runs the raid preconditions without executing anything.
func (s *RaidService) CheckEligibility(attackerID, defenderID int64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var attacker models.User
		if err := tx.Where("user_id = ?", attackerID).First(&attacker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", attackerID, ErrNotFound)
			}
			return err
		}
		return s.canRaid(tx, &attacker, defenderID, time.Now())
	})
}

// Execute settles a raid end to end in one transaction: eligibility, power
// totals, a single win draw, steal attempt, stat updates and the append-only
// log entry.
func (s *RaidService) Execute(attackerID, defenderID int64, petIDs []string) (*RaidOutcome, error) {
	var outcome *RaidOutcome
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var attacker models.User
		if err := tx.Where("user_id = ?", attackerID).First(&attacker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", attackerID, ErrNotFound)
			}
			return err
		}
		if err := s.canRaid(tx, &attacker, defenderID, now); err != nil {
			return err
		}
		var defender models.User
		if err := tx.Where("user_id = ?", defenderID).First(&defender).Error; err != nil {
			return err
		}

		// Only the attacker's own, mission-free, rested pets count.
		var squad []models.Pet
		if len(petIDs) > 0 {
			if err := tx.Where("id IN ? AND owner_id = ?", petIDs, attackerID).Find(&squad).Error; err != nil {
				return err
			}
		}
		valid := squad[:0]
		for _, pet := range squad {
			if pet.Activity != models.ActivityMission && !pet.Fatigued(now) {
				valid = append(valid, pet)
			}
		}
		if len(valid) == 0 {
			return Validationf("no valid pets for attack")
		}

		attackPower := game.AttackPower(valid)
		defPower, err := defensePower(tx, s.Cfg, defenderID)
		if err != nil {
			return err
		}

		chance := game.RaidWinChance(s.Cfg, attackPower, defPower, s.Rng)
		success := s.Rng.Float64() < chance

		ach := NewAchievementService(tx, s.Cfg)
		if _, err := ach.Record(&attacker, models.MetricRaidsAttempted, 1); err != nil {
			return err
		}

		var stolen *models.Pet
		if success {
			candidates, err := stealablePets(tx, defenderID)
			if err != nil {
				return err
			}
			if len(candidates) > 0 {
				target := candidates[s.Rng.IntN(len(candidates))]
				if game.CanStealPet(s.Cfg, &target, s.Rng) {
					ok, err := transferPet(tx, &target, attackerID, "raid")
					if err != nil {
						return err
					}
					if ok {
						stolen = &target
					}
				}
			}

			shield := now.Add(s.Cfg.ShieldDuration)
			attacker.ShieldUntil = &shield
			attacker.RaidsWon++
			defender.DefensesLost++

			if _, err := ach.Record(&attacker, models.MetricRaidsWon, 1); err != nil {
				return err
			}
		} else {
			fatigue := now.Add(s.Cfg.RaidLossFatigue)
			for i := range valid {
				valid[i].FatigueUntil = &fatigue
				if err := tx.Save(&valid[i]).Error; err != nil {
					return err
				}
			}

			attacker.RaidsLost++
			defender.DefensesWon++

			if _, err := ach.Record(&defender, models.MetricDefensesWon, 1); err != nil {
				return err
			}
		}

		attacker.FreeRaidsToday--
		if err := tx.Save(&attacker).Error; err != nil {
			return err
		}
		if err := tx.Save(&defender).Error; err != nil {
			return err
		}

		raid := models.Raid{
			ID:            uuid.NewString(),
			AttackerID:    attackerID,
			DefenderID:    defenderID,
			AttackerPower: attackPower,
			DefenderPower: defPower,
			Result:        models.RaidLose,
		}
		if success {
			raid.Result = models.RaidWin
		}
		if stolen != nil {
			raid.StolenPetID = &stolen.ID
		}
		if err := tx.Create(&raid).Error; err != nil {
			return err
		}

		outcome = &RaidOutcome{
			Success:      success,
			AttackPower:  attackPower,
			DefensePower: defPower,
			WinChance:    chance,
			StolenPet:    stolen,
			Raid:         raid,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome.Success {
		log.Printf("⚔️ Raid win: %d -> %d (stole: %v)", attackerID, defenderID, outcome.StolenPet != nil)
	} else {
		log.Printf("🛡️ Raid repelled: %d -> %d", attackerID, defenderID)
	}
	return outcome, nil
}

// BuyTrap buys or upgrades a trap; cost scales with the next level.
func (s *RaidService) BuyTrap(userID int64, trapType models.TrapType) (int, error) {
	newLevel := 0
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return err
		}

		current := user.TrapLevel(trapType)
		cost, ok := game.TrapCost(s.Cfg, trapType, current)
		if !ok {
			return Validationf("unknown trap type: %s", trapType)
		}
		if user.Coins < cost {
			return Validationf("not enough coins: need %d, have %d", cost, user.Coins)
		}

		user.Coins -= cost
		if user.Traps == nil {
			user.Traps = map[models.TrapType]int{}
		}
		user.Traps[trapType] = current + 1
		newLevel = current + 1
		return tx.Save(&user).Error
	})
	if err != nil {
		return 0, err
	}
	log.Printf("🪤 User %d upgraded %s to level %d", userID, trapType, newLevel)
	return newLevel, nil
}

// Targets suggests raidable users near the attacker's level: unshielded,
// not on cooldown, random order.
func (s *RaidService) Targets(attackerID int64, limit int) ([]models.User, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	attacker, err := (&UserService{DB: s.DB, Cfg: s.Cfg}).Get(attackerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	minLevel := attacker.Level - 5
	if minLevel < 1 {
		minLevel = 1
	}

	var candidates []models.User
	if err := s.DB.Where("user_id <> ? AND level BETWEEN ? AND ?", attackerID, minLevel, attacker.Level+5).
		Where("shield_until IS NULL OR shield_until < ?", now).
		Order("random()").
		Limit(limit * 2).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	targets := make([]models.User, 0, limit)
	for _, candidate := range candidates {
		var count int64
		if err := s.DB.Model(&models.Raid{}).
			Where("attacker_id = ? AND defender_id = ? AND timestamp > ?",
				attackerID, candidate.UserID, now.Add(-s.Cfg.RaidCooldown)).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			continue
		}
		targets = append(targets, candidate)
		if len(targets) >= limit {
			break
		}
	}
	return targets, nil
}

// History returns the user's recent raids, as attacker or defender.
func (s *RaidService) History(userID int64, limit int) ([]models.Raid, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var raids []models.Raid
	err := s.DB.Where("attacker_id = ? OR defender_id = ?", userID, userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&raids).Error
	return raids, err
}

// Stats summarizes the user's raid record.
func (s *RaidService) Stats(userID int64) (map[string]any, error) {
	user, err := (&UserService{DB: s.DB, Cfg: s.Cfg}).Get(userID)
	if err != nil {
		return nil, err
	}

	rate := func(won, lost int) float64 {
		total := won + lost
		if total == 0 {
			return 0
		}
		return float64(won) / float64(total) * 100
	}

	return map[string]any{
		"raids_won":        user.RaidsWon,
		"raids_lost":       user.RaidsLost,
		"defenses_won":     user.DefensesWon,
		"defenses_lost":    user.DefensesLost,
		"win_rate":         rate(user.RaidsWon, user.RaidsLost),
		"defense_rate":     rate(user.DefensesWon, user.DefensesLost),
		"free_raids_today": user.FreeRaidsToday,
	}, nil
}
