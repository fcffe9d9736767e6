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

type PetService struct {
	DB  *gorm.DB
	Cfg *config.GameConfig
	Rng game.RandomSource

	gen *game.Generator
}

func NewPetService(db *gorm.DB, cfg *config.GameConfig, rng game.RandomSource) *PetService {
	if rng == nil {
		rng = game.DefaultRNG()
	}
	return &PetService{DB: db, Cfg: cfg, Rng: rng, gen: game.NewGenerator(cfg, rng)}
}

// OpenEgg buys an egg, rolls a pet and persists it, all in one transaction.
// Rejects on unknown egg type, insufficient balance or no free pet slot.
func (s *PetService) OpenEgg(userID int64, egg models.EggType) (*models.Pet, error) {
	var created *models.Pet
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return err
		}

		cost, ok := s.Cfg.EggCosts[egg]
		if !ok {
			return Validationf("unknown egg type: %s", egg)
		}

		var petCount int64
		if err := tx.Model(&models.Pet{}).Where("owner_id = ?", userID).Count(&petCount).Error; err != nil {
			return err
		}
		if petCount >= int64(user.PetSlots) {
			return Validationf("no free pet slots (%d/%d)", petCount, user.PetSlots)
		}

		if user.Coins < cost.Coins {
			return Validationf("not enough coins: need %d, have %d", cost.Coins, user.Coins)
		}
		if user.Stars < cost.Stars {
			return Validationf("not enough stars: need %d, have %d", cost.Stars, user.Stars)
		}
		user.Coins -= cost.Coins
		user.Stars -= cost.Stars

		draft := s.gen.Generate(egg)
		pet := models.Pet{
			ID:            uuid.NewString(),
			OwnerID:       userID,
			Name:          draft.Name,
			Species:       draft.Species,
			Rarity:        draft.Rarity,
			Emoji:         draft.Emoji,
			Level:         draft.Level,
			Power:         draft.Power,
			IncomePerHour: draft.IncomePerHour,
			Stamina:       draft.Stamina,
			Loyalty:       draft.Loyalty,
			IsShiny:       draft.IsShiny,
			Activity:      models.ActivityIdle,
			ObtainedFrom:  "egg",
		}
		if err := tx.Create(&pet).Error; err != nil {
			return err
		}

		ach := NewAchievementService(tx, s.Cfg)
		if _, err := ach.Record(&user, models.MetricPetsOwned, 1); err != nil {
			return err
		}
		if pet.Rarity.Rank() >= models.RarityRare.Rank() {
			if _, err := ach.Record(&user, models.MetricRarePetOwned, 1); err != nil {
				return err
			}
		}
		if pet.Rarity.Rank() >= models.RarityLegendary.Rank() {
			if _, err := ach.Record(&user, models.MetricLegendaryPetOwned, 1); err != nil {
				return err
			}
		}
		if pet.IsShiny {
			if _, err := ach.Record(&user, models.MetricShinyPetOwned, 1); err != nil {
				return err
			}
		}

		// One save carries the egg cost and any achievement rewards together.
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		created = &pet
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🥚 User %d hatched %s (%s)", userID, created.Name, created.Rarity)
	return created, nil
}

// GetPet loads a pet, optionally enforcing ownership.
func (s *PetService) GetPet(petID string, ownerID int64) (*models.Pet, error) {
	q := s.DB.Where("id = ?", petID)
	if ownerID != 0 {
		q = q.Where("owner_id = ?", ownerID)
	}
	var pet models.Pet
	if err := q.First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pet %s: %w", petID, ErrNotFound)
		}
		return nil, err
	}
	return &pet, nil
}

// ListPets returns all pets for a user, strongest first.
func (s *PetService) ListPets(userID int64) ([]models.Pet, error) {
	var pets []models.Pet
	err := s.DB.Where("owner_id = ?", userID).
		Order("level DESC, power DESC").
		Find(&pets).Error
	return pets, err
}

// AvailableForMission returns idle, rested pets.
func (s *PetService) AvailableForMission(userID int64) ([]models.Pet, error) {
	now := time.Now()
	var pets []models.Pet
	err := s.DB.Where("owner_id = ? AND activity = ?", userID, models.ActivityIdle).
		Where("fatigue_until IS NULL OR fatigue_until < ?", now).
		Order("power DESC").
		Find(&pets).Error
	return pets, err
}

// SetDefending toggles a pet between idle and defending. Pets on a mission
// cannot defend; the defender count is capped per user.
func (s *PetService) SetDefending(userID int64, petID string, defending bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var pet models.Pet
		if err := tx.Where("id = ? AND owner_id = ?", petID, userID).First(&pet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pet %s: %w", petID, ErrNotFound)
			}
			return err
		}

		if !defending {
			if pet.Activity != models.ActivityDefending {
				return Validationf("pet is not defending")
			}
			pet.Activity = models.ActivityIdle
			return tx.Save(&pet).Error
		}

		if pet.Activity == models.ActivityMission {
			return Validationf("pet is on a mission")
		}
		if pet.Activity == models.ActivityDefending {
			return Validationf("pet is already defending")
		}

		var user models.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		var defenders int64
		if err := tx.Model(&models.Pet{}).
			Where("owner_id = ? AND activity = ?", userID, models.ActivityDefending).
			Count(&defenders).Error; err != nil {
			return err
		}
		if defenders >= int64(user.MaxDefenders) {
			return Validationf("defender limit reached (%d)", user.MaxDefenders)
		}

		pet.Activity = models.ActivityDefending
		return tx.Save(&pet).Error
	})
}

// addPetExperience routes exp through the progression rules and reports the
// max-level metric when the cap is reached. Runs inside the caller's tx;
// the owner struct picks up any achievement reward and is saved by the
// caller.
func (s *PetService) addPetExperience(tx *gorm.DB, pet *models.Pet, owner *models.User, exp int64) (game.LevelUpResult, error) {
	result := game.ApplyExperience(s.Cfg, pet, exp)
	if err := tx.Save(pet).Error; err != nil {
		return result, err
	}
	if result.LevelsGained > 0 && pet.Level >= s.Cfg.MaxPetLevel {
		ach := NewAchievementService(tx, s.Cfg)
		if _, err := ach.Record(owner, models.MetricMaxLevelPet, 1); err != nil {
			return result, err
		}
	}
	return result, nil
}

// transferPet moves a pet to a new owner inside the caller's transaction.
// Returns false without error when the new owner has no free slot.
func transferPet(tx *gorm.DB, pet *models.Pet, newOwnerID int64, reason string) (bool, error) {
	var newOwner models.User
	if err := tx.Where("user_id = ?", newOwnerID).First(&newOwner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	var petCount int64
	if err := tx.Model(&models.Pet{}).Where("owner_id = ?", newOwnerID).Count(&petCount).Error; err != nil {
		return false, err
	}
	if petCount >= int64(newOwner.PetSlots) {
		log.Printf("⚠️ User %d has no free pet slots, transfer skipped", newOwnerID)
		return false, nil
	}

	oldOwner := pet.OwnerID
	pet.Activity = models.ActivityIdle
	pet.FatigueUntil = nil
	pet.OwnerID = newOwnerID
	pet.ObtainedFrom = reason
	if err := tx.Save(pet).Error; err != nil {
		return false, err
	}

	log.Printf("🔁 Pet %s transferred %d -> %d (%s)", pet.ID, oldOwner, newOwnerID, reason)
	return true, nil
}

// defensePower totals a user's defending pets plus trap bonuses.
func defensePower(tx *gorm.DB, cfg *config.GameConfig, userID int64) (int, error) {
	var defenders []models.Pet
	if err := tx.Where("owner_id = ? AND activity = ?", userID, models.ActivityDefending).
		Find(&defenders).Error; err != nil {
		return 0, err
	}

	var user models.User
	if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return 0, err
	}

	return game.DefensePower(cfg, defenders, user.Traps), nil
}

// stealablePets returns the defender's pets a raider may take: not on a
// mission and below the top rarity tier.
func stealablePets(tx *gorm.DB, userID int64) ([]models.Pet, error) {
	var pets []models.Pet
	err := tx.Where("owner_id = ? AND activity <> ? AND rarity <> ?",
		userID, models.ActivityMission, models.RarityMythical).
		Find(&pets).Error
	return pets, err
}

// CollectionStats counts pets per rarity and sums their trade value.
func (s *PetService) CollectionStats(userID int64) (map[string]any, error) {
	pets, err := s.ListPets(userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Rarity]int, len(models.RarityOrder))
	for _, r := range models.RarityOrder {
		counts[r] = 0
	}
	var totalValue int64
	for _, pet := range pets {
		counts[pet.Rarity]++
		totalValue += game.PetValue(s.Cfg, pet.Rarity, pet.Level, pet.IsShiny)
	}

	return map[string]any{
		"total":       len(pets),
		"by_rarity":   counts,
		"total_value": totalValue,
	}, nil
}
