package models

import (
	"time"
)

// Achievement is a static definition row. Definitions are seeded once on
// boot and matched against progress events by Metric.
type Achievement struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Key         string `gorm:"uniqueIndex;size:50;not null" json:"key"`
	Name        string `gorm:"size:100" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:10" json:"icon"`

	Metric    string `gorm:"size:50;index" json:"metric"`
	Threshold int64  `gorm:"not null" json:"threshold"`

	RewardCoins int64 `gorm:"default:0" json:"reward_coins"`
	RewardStars int64 `gorm:"default:0" json:"reward_stars"`

	IsHidden bool   `gorm:"default:false" json:"is_hidden"`
	Category string `gorm:"size:50;index" json:"category"`
}

// AchievementProgress is the per-user counter against one definition.
// Once Completed flips true it stays true and the reward is never re-granted.
type AchievementProgress struct {
	ID            string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID        int64  `gorm:"index;not null" json:"user_id"`
	AchievementID string `gorm:"index;not null;type:uuid" json:"achievement_id"`

	CurrentValue int64      `gorm:"default:0" json:"current_value"`
	Completed    bool       `gorm:"default:false;index" json:"completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Achievement metrics reported by services.
const (
	MetricPetsOwned         = "pets_owned"
	MetricRarePetOwned      = "rare_pet_owned"
	MetricLegendaryPetOwned = "legendary_pet_owned"
	MetricShinyPetOwned     = "shiny_pet_owned"
	MetricMaxLevelPet       = "max_level_pet"
	MetricMissionsCompleted = "missions_completed"
	MetricRaidsAttempted    = "raids_attempted"
	MetricRaidsWon          = "raids_won"
	MetricDefensesWon       = "defenses_won"
	MetricCoinsEarned       = "coins_earned"
	MetricLevelReached      = "level_reached"
	MetricTradesCompleted   = "trades_completed"
)

// AchievementSeed holds the built-in definitions, inserted on first boot.
var AchievementSeed = []Achievement{
	// Collection
	{Key: "first_pet", Name: "First Step", Icon: "🐣", Description: "Hatch your first pet", Metric: MetricPetsOwned, Threshold: 1, RewardCoins: 100, Category: "collection"},
	{Key: "collector_5", Name: "Collector", Icon: "🎯", Description: "Collect 5 pets", Metric: MetricPetsOwned, Threshold: 5, RewardCoins: 500, Category: "collection"},
	{Key: "collector_10", Name: "Master Collector", Icon: "🏆", Description: "Collect 10 pets", Metric: MetricPetsOwned, Threshold: 10, RewardCoins: 2000, RewardStars: 50, Category: "collection"},
	{Key: "rare_collector", Name: "Rare Hunter", Icon: "💎", Description: "Obtain a pet of Rare rarity or higher", Metric: MetricRarePetOwned, Threshold: 1, RewardCoins: 1000, RewardStars: 25, Category: "collection"},
	{Key: "legendary_owner", Name: "Legend", Icon: "⭐", Description: "Obtain a Legendary pet", Metric: MetricLegendaryPetOwned, Threshold: 1, RewardCoins: 5000, RewardStars: 100, Category: "collection"},

	// Missions
	{Key: "first_mission", Name: "First Mission", Icon: "🚀", Description: "Complete your first mission", Metric: MetricMissionsCompleted, Threshold: 1, RewardCoins: 100, Category: "missions"},
	{Key: "mission_veteran_10", Name: "Veteran", Icon: "🎖️", Description: "Complete 10 missions", Metric: MetricMissionsCompleted, Threshold: 10, RewardCoins: 500, Category: "missions"},
	{Key: "mission_expert_50", Name: "Expert", Icon: "⚔️", Description: "Complete 50 missions", Metric: MetricMissionsCompleted, Threshold: 50, RewardCoins: 3000, RewardStars: 50, Category: "missions"},
	{Key: "mission_master_100", Name: "Mission Master", Icon: "👑", Description: "Complete 100 missions", Metric: MetricMissionsCompleted, Threshold: 100, RewardCoins: 10000, RewardStars: 150, Category: "missions"},

	// Raids
	{Key: "first_raid", Name: "First Raid", Icon: "⚡", Description: "Launch your first raid", Metric: MetricRaidsAttempted, Threshold: 1, RewardCoins: 200, Category: "raids"},
	{Key: "raid_winner_10", Name: "Raider", Icon: "🗡️", Description: "Win 10 raids", Metric: MetricRaidsWon, Threshold: 10, RewardCoins: 1000, RewardStars: 25, Category: "raids"},
	{Key: "raid_master_50", Name: "Raid Master", Icon: "💀", Description: "Win 50 raids", Metric: MetricRaidsWon, Threshold: 50, RewardCoins: 5000, RewardStars: 100, Category: "raids"},
	{Key: "defender_10", Name: "Defender", Icon: "🛡️", Description: "Fend off 10 raids", Metric: MetricDefensesWon, Threshold: 10, RewardCoins: 1000, RewardStars: 25, Category: "raids"},
	{Key: "fortress_50", Name: "Fortress", Icon: "🏰", Description: "Fend off 50 raids", Metric: MetricDefensesWon, Threshold: 50, RewardCoins: 5000, RewardStars: 100, Category: "raids"},

	// Wealth
	{Key: "rich_10k", Name: "Getting Rich", Icon: "💰", Description: "Earn 10,000 coins", Metric: MetricCoinsEarned, Threshold: 10000, RewardCoins: 500, Category: "wealth"},
	{Key: "rich_100k", Name: "Wealthy", Icon: "💎", Description: "Earn 100,000 coins", Metric: MetricCoinsEarned, Threshold: 100000, RewardCoins: 5000, RewardStars: 100, Category: "wealth"},
	{Key: "millionaire", Name: "Millionaire", Icon: "🌟", Description: "Earn 1,000,000 coins", Metric: MetricCoinsEarned, Threshold: 1000000, RewardCoins: 50000, RewardStars: 500, Category: "wealth"},

	// Progression
	{Key: "level_10", Name: "Rising Star", Icon: "📈", Description: "Reach level 10", Metric: MetricLevelReached, Threshold: 10, RewardCoins: 1000, RewardStars: 25, Category: "progression"},
	{Key: "level_25", Name: "Pro Player", Icon: "🌠", Description: "Reach level 25", Metric: MetricLevelReached, Threshold: 25, RewardCoins: 5000, RewardStars: 100, Category: "progression"},
	{Key: "level_50", Name: "Elite", Icon: "👑", Description: "Reach level 50", Metric: MetricLevelReached, Threshold: 50, RewardCoins: 20000, RewardStars: 250, Category: "progression"},

	// Special / social
	{Key: "max_level_pet", Name: "Perfect Training", Icon: "🔥", Description: "Train a pet to level 100", Metric: MetricMaxLevelPet, Threshold: 1, RewardCoins: 10000, RewardStars: 200, Category: "special"},
	{Key: "trader", Name: "Trader", Icon: "🤝", Description: "Complete 10 trades", Metric: MetricTradesCompleted, Threshold: 10, RewardCoins: 2000, RewardStars: 50, Category: "social"},
	{Key: "shiny_hunter", Name: "Shiny Hunter", Icon: "✨", Description: "Obtain a shiny pet", Metric: MetricShinyPetOwned, Threshold: 1, RewardCoins: 5000, RewardStars: 150, Category: "special", IsHidden: true},
}
