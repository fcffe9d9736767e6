package game

import (
	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

// AttackPower sums power*level over the attacking squad.
func AttackPower(pets []models.Pet) int {
	total := 0
	for _, p := range pets {
		total += p.Power * p.Level
	}
	return total
}

// DefensePower sums power*level over defending pets plus flat trap bonuses
// scaled by owned trap level.
func DefensePower(cfg *config.GameConfig, defenders []models.Pet, traps map[models.TrapType]int) int {
	total := 0
	for _, p := range defenders {
		total += p.Power * p.Level
	}
	for trapType, level := range traps {
		if info, ok := cfg.Traps[trapType]; ok {
			total += info.DefenseBonus * level
		}
	}
	return total
}

// RaidWinChance blends the two power totals into a win probability,
// perturbs it by a uniform jitter and clamps the result. Two zero-power
// sides meet at a coin flip.
func RaidWinChance(cfg *config.GameConfig, attackPower, defensePower int, rng RandomSource) float64 {
	total := attackPower + defensePower
	chance := 0.5
	if total > 0 {
		chance = float64(attackPower) / float64(total)
	}

	chance += (rng.Float64()*2 - 1) * cfg.RaidJitter

	if chance < cfg.RaidChanceMin {
		chance = cfg.RaidChanceMin
	}
	if chance > cfg.RaidChanceMax {
		chance = cfg.RaidChanceMax
	}
	return chance
}

// CanStealPet decides whether a steal attempt on this pet goes through.
// Top-tier pets are never stealable; high loyalty vetoes the steal with
// probability LoyaltyStealReduction.
func CanStealPet(cfg *config.GameConfig, pet *models.Pet, rng RandomSource) bool {
	if pet.Rarity == models.RarityMythical {
		return false
	}
	if pet.Loyalty > cfg.LoyaltyStealThreshold {
		return rng.Float64() > cfg.LoyaltyStealReduction
	}
	return true
}

// TrapCost prices buying or upgrading a trap: base cost times the next level.
func TrapCost(cfg *config.GameConfig, trapType models.TrapType, currentLevel int) (int64, bool) {
	info, ok := cfg.Traps[trapType]
	if !ok {
		return 0, false
	}
	return info.Cost * int64(currentLevel+1), true
}
