package config

import (
	"time"

	"pet-empire-bot/models"
)

// GameConfig is the full balance table. It is built once at startup and
// passed into evaluators and services; nothing mutates it afterwards.
type GameConfig struct {
	// Economy
	StartingCoins int64
	StartingSlots int
	MaxDefenders  int

	// Pet generation
	Rarities        map[models.Rarity]RarityInfo
	EggPools        map[models.EggType][]RarityWeight
	EggCosts        map[models.EggType]EggCost
	Species         []string
	NamePrefixes    map[models.Rarity][]string
	ShinyChance     float64
	ShinyMultiplier float64
	LoyaltyMin      int
	LoyaltyMax      int

	// Progression
	MaxPetLevel       int
	ExpBase           int64
	ExpGrowth         float64
	EvolutionLevels   []int
	LevelPowerBonus   int
	LevelIncomeGrowth float64
	UserExpShare      int64 // mission exp divisor for the owner's level track

	// Missions
	Missions          map[models.MissionType]MissionInfo
	MissionNames      map[models.MissionType][]string
	MaxFailChance     float64
	FailPayoutShare   float64
	MissionFatigue    time.Duration
	SkipCostPerHour   int64
	SkipCostMin       int64

	// Raids
	Traps                 map[models.TrapType]TrapInfo
	RaidCooldown          time.Duration
	ShieldDuration        time.Duration
	RaidLossFatigue       time.Duration
	DailyFreeRaids        int
	LoyaltyStealThreshold int
	LoyaltyStealReduction float64
	RaidJitter            float64
	RaidChanceMin         float64
	RaidChanceMax         float64

	// Trading
	TradeCommission   float64
	AuctionCommission float64
	TradeTTL          time.Duration
}

type RarityInfo struct {
	Emoji      string
	Chance     float64 // weight in the common egg pool
	BaseIncome int
	BasePower  int
	RewardMult float64 // mission reward multiplier
	BaseValue  int64   // trade valuation base
}

type RarityWeight struct {
	Rarity models.Rarity
	Weight float64
}

type EggCost struct {
	Coins int64
	Stars int64
}

type MissionInfo struct {
	Duration   time.Duration
	BaseReward int64
	ExpReward  int64
	FailChance float64
}

type TrapInfo struct {
	Cost         int64
	DefenseBonus int
}

// DefaultGameConfig returns the built-in balance tables.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		StartingCoins: 1000,
		StartingSlots: 5,
		MaxDefenders:  3,

		Rarities: map[models.Rarity]RarityInfo{
			models.RarityCommon:    {Emoji: "⚪️", Chance: 0.50, BaseIncome: 10, BasePower: 5, RewardMult: 1.0, BaseValue: 100},
			models.RarityUncommon:  {Emoji: "🟢", Chance: 0.30, BaseIncome: 25, BasePower: 12, RewardMult: 1.2, BaseValue: 300},
			models.RarityRare:      {Emoji: "🔵", Chance: 0.15, BaseIncome: 50, BasePower: 25, RewardMult: 1.5, BaseValue: 800},
			models.RarityEpic:      {Emoji: "🟣", Chance: 0.04, BaseIncome: 150, BasePower: 60, RewardMult: 2.0, BaseValue: 2500},
			models.RarityLegendary: {Emoji: "🟡", Chance: 0.009, BaseIncome: 500, BasePower: 150, RewardMult: 3.0, BaseValue: 10000},
			models.RarityMythical:  {Emoji: "🌈", Chance: 0.001, BaseIncome: 2000, BasePower: 500, RewardMult: 5.0, BaseValue: 50000},
		},

		// Higher egg tiers restrict the candidate set to rarer tiers.
		// The common egg draws across all six rarities by base chance.
		EggPools: map[models.EggType][]RarityWeight{
			models.EggCommon: {
				{models.RarityCommon, 0.50},
				{models.RarityUncommon, 0.30},
				{models.RarityRare, 0.15},
				{models.RarityEpic, 0.04},
				{models.RarityLegendary, 0.009},
				{models.RarityMythical, 0.001},
			},
			models.EggRare: {
				{models.RarityRare, 0.70},
				{models.RarityEpic, 0.25},
				{models.RarityLegendary, 0.05},
			},
			models.EggEpic: {
				{models.RarityEpic, 0.80},
				{models.RarityLegendary, 0.20},
			},
			models.EggLegendary: {
				{models.RarityLegendary, 0.90},
				{models.RarityMythical, 0.10},
			},
			models.EggMythical: {
				{models.RarityMythical, 1.0},
			},
		},

		EggCosts: map[models.EggType]EggCost{
			models.EggCommon:    {Coins: 50},
			models.EggRare:      {Stars: 100},
			models.EggEpic:      {Stars: 250},
			models.EggLegendary: {Stars: 500},
			models.EggMythical:  {Stars: 1000},
		},

		// Ordered: [0:5] common, [5:10] fantasy, [10:15] meme, [15:20] mythical.
		// Species pools per rarity slice into this list.
		Species: []string{
			"Cat", "Dog", "Hamster", "Parrot", "Rabbit",
			"Dragon", "Unicorn", "Phoenix", "Griffin", "Pegasus",
			"Doge", "Pepe", "Shiba", "Cheems", "Wojak",
			"Cerberus", "Hydra", "Kraken", "Basilisk", "Manticore",
		},

		NamePrefixes: map[models.Rarity][]string{
			models.RarityCommon:    {"Little", "Tiny", "Small", "Young", "Baby"},
			models.RarityUncommon:  {"Swift", "Quick", "Brave", "Bold", "Strong"},
			models.RarityRare:      {"Noble", "Mighty", "Fierce", "Royal", "Grand"},
			models.RarityEpic:      {"Ancient", "Legendary", "Mystic", "Celestial", "Divine"},
			models.RarityLegendary: {"Supreme", "Immortal", "Eternal", "Cosmic", "Radiant"},
			models.RarityMythical:  {"Transcendent", "Omnipotent", "Primordial", "Infinite", "Ultimate"},
		},

		ShinyChance:     0.01,
		ShinyMultiplier: 1.2,
		LoyaltyMin:      40,
		LoyaltyMax:      60,

		MaxPetLevel:       100,
		ExpBase:           100,
		ExpGrowth:         1.1,
		EvolutionLevels:   []int{10, 25, 50, 75, 100},
		LevelPowerBonus:   2,
		LevelIncomeGrowth: 1.05,
		UserExpShare:      10,

		Missions: map[models.MissionType]MissionInfo{
			models.MissionQuick:  {Duration: 30 * time.Minute, BaseReward: 50, ExpReward: 20, FailChance: 0.05},
			models.MissionMedium: {Duration: 3 * time.Hour, BaseReward: 200, ExpReward: 80, FailChance: 0.15},
			models.MissionLong:   {Duration: 8 * time.Hour, BaseReward: 800, ExpReward: 300, FailChance: 0.25},
			models.MissionEpic:   {Duration: 12 * time.Hour, BaseReward: 2000, ExpReward: 800, FailChance: 0.30},
		},

		MissionNames: map[models.MissionType][]string{
			models.MissionQuick:  {"🌳 Walk in the Park", "🦴 Find a Treat", "🏃 Quick Run", "🎾 Play Fetch", "🌸 Flower Picking"},
			models.MissionMedium: {"💎 Treasure Hunt", "🏠 Guard the House", "🎣 Fishing Trip", "🗺️ Explore Forest", "⚔️ Train in Arena"},
			models.MissionLong:   {"🏰 Dungeon Expedition", "🛡️ Guard Caravan", "⛰️ Mountain Climb", "🌊 Deep Sea Dive", "🔮 Ancient Ruins"},
			models.MissionEpic:   {"🐉 Dragon's Lair", "👑 Rescue the Princess", "💀 Defeat the Boss", "🌟 Cosmic Journey", "⚡ Storm the Castle"},
		},

		MaxFailChance:   0.5,
		FailPayoutShare: 0.2,
		MissionFatigue:  time.Hour,
		SkipCostPerHour: 10,
		SkipCostMin:     20,

		Traps: map[models.TrapType]TrapInfo{
			models.TrapBasicWall:     {Cost: 100, DefenseBonus: 10},
			models.TrapAlarm:         {Cost: 500, DefenseBonus: 15},
			models.TrapElectricFence: {Cost: 2000, DefenseBonus: 25},
			models.TrapLaserGrid:     {Cost: 10000, DefenseBonus: 50},
		},

		RaidCooldown:          6 * time.Hour,
		ShieldDuration:        time.Hour,
		RaidLossFatigue:       2 * time.Hour,
		DailyFreeRaids:        5,
		LoyaltyStealThreshold: 80,
		LoyaltyStealReduction: 0.5,
		RaidJitter:            0.15,
		RaidChanceMin:         0.10,
		RaidChanceMax:         0.90,

		TradeCommission:   0.05,
		AuctionCommission: 0.10,
		TradeTTL:          24 * time.Hour,
	}
}

// SpeciesPool returns the slice of species a rarity can draw from.
// Higher rarities are biased toward the fantasy and mythical pools.
func (c *GameConfig) SpeciesPool(r models.Rarity) []string {
	switch r {
	case models.RarityMythical, models.RarityLegendary:
		return c.Species[10:]
	case models.RarityEpic, models.RarityRare:
		return c.Species[5:15]
	default:
		return c.Species[:10]
	}
}

// PetEmojis maps species to display emoji.
var PetEmojis = map[string]string{
	"Cat": "🐱", "Dog": "🐶", "Hamster": "🐹", "Parrot": "🦜", "Rabbit": "🐰",
	"Dragon": "🐉", "Unicorn": "🦄", "Phoenix": "🔥", "Griffin": "🦅", "Pegasus": "🐴",
	"Doge": "🐕", "Pepe": "🐸", "Shiba": "🐕", "Cheems": "🐶", "Wojak": "😐",
	"Cerberus": "🐺", "Hydra": "🐍", "Kraken": "🦑", "Basilisk": "🐍", "Manticore": "🦁",
}
