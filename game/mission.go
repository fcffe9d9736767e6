package game

import (
	"time"

	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

// MissionReward is the coin/exp payout computed when a mission starts.
type MissionReward struct {
	Coins int64
	Exp   int64
}

// MissionRewards scales the tier's base payout by the pet's level and
// rarity: base * (1 + level*0.05) * rarityMultiplier.
func MissionRewards(cfg *config.GameConfig, tier models.MissionType, level int, rarity models.Rarity) MissionReward {
	info := cfg.Missions[tier]

	mult := 1 + float64(level)*0.05
	if r, ok := cfg.Rarities[rarity]; ok {
		mult *= r.RewardMult
	}

	return MissionReward{
		Coins: int64(float64(info.BaseReward) * mult),
		Exp:   int64(float64(info.ExpReward) * mult),
	}
}

// MissionSuccessChance computes the probability a resolved mission succeeds.
// Level shaves up to half of the base fail chance; stamina below 50 inflates
// it; the final fail chance is capped at MaxFailChance.
func MissionSuccessChance(cfg *config.GameConfig, tier models.MissionType, stamina, level int) float64 {
	base := cfg.Missions[tier].FailChance

	staminaMod := 1.0
	if stamina < 50 {
		staminaMod = float64(stamina) / 50
	}

	levelMod := 1 - float64(level)*0.005
	if levelMod < 0.5 {
		levelMod = 0.5
	}

	fail := base * levelMod * (2 - staminaMod)
	if fail > cfg.MaxFailChance {
		fail = cfg.MaxFailChance
	}
	return 1 - fail
}

// SkipAheadCost prices an early completion in stars, proportional to the
// time remaining, with a floor.
func SkipAheadCost(cfg *config.GameConfig, remaining time.Duration) int64 {
	if remaining < 0 {
		remaining = 0
	}
	cost := int64(remaining.Hours() * float64(cfg.SkipCostPerHour))
	if cost < cfg.SkipCostMin {
		cost = cfg.SkipCostMin
	}
	return cost
}
