package game

import (
	"math"

	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

// LevelUpResult reports what a batch of experience did to a pet.
type LevelUpResult struct {
	LevelsGained  int   `json:"levels_gained"`
	Level         int   `json:"level"`
	Power         int   `json:"power"`
	IncomePerHour int   `json:"income_per_hour"`
	Exp           int64 `json:"exp"`
	Evolved       bool  `json:"evolved"`
}

// ExpForNextLevel returns the experience needed to leave the given level.
// Exponential curve: base * growth^level.
func ExpForNextLevel(cfg *config.GameConfig, level int) int64 {
	return int64(float64(cfg.ExpBase) * math.Pow(cfg.ExpGrowth, float64(level)))
}

// ApplyExperience adds exp to the pet and consumes it into level-ups. Each
// level grants a flat power bonus and a percentage income raise; crossing an
// evolution level bumps the evolution stage. Levels cap at MaxPetLevel;
// surplus experience past the cap is retained unspent.
func ApplyExperience(cfg *config.GameConfig, pet *models.Pet, exp int64) LevelUpResult {
	pet.Exp += exp

	result := LevelUpResult{}
	for pet.Level < cfg.MaxPetLevel {
		required := ExpForNextLevel(cfg, pet.Level)
		if pet.Exp < required {
			break
		}
		pet.Exp -= required
		pet.Level++
		result.LevelsGained++

		pet.Power += cfg.LevelPowerBonus
		pet.IncomePerHour = int(float64(pet.IncomePerHour) * cfg.LevelIncomeGrowth)

		if isEvolutionLevel(cfg, pet.Level) {
			pet.EvolutionStage++
			result.Evolved = true
		}
	}

	result.Level = pet.Level
	result.Power = pet.Power
	result.IncomePerHour = pet.IncomePerHour
	result.Exp = pet.Exp
	return result
}

func isEvolutionLevel(cfg *config.GameConfig, level int) bool {
	for _, l := range cfg.EvolutionLevels {
		if level == l {
			return true
		}
	}
	return false
}
