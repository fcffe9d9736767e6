package game

import (
	"fmt"

	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

// PetDraft is a fully rolled pet, ready to be persisted by the caller.
type PetDraft struct {
	Name          string
	Species       string
	Rarity        models.Rarity
	Emoji         string
	Level         int
	Power         int
	IncomePerHour int
	Stamina       int
	Loyalty       int
	IsShiny       bool
}

// Generator rolls new pets from eggs. It never fails: unknown egg types
// fall back to the common pool.
type Generator struct {
	cfg *config.GameConfig
	rng RandomSource
}

func NewGenerator(cfg *config.GameConfig, rng RandomSource) *Generator {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Generator{cfg: cfg, rng: rng}
}

// DetermineRarity draws a rarity from the egg's weighted pool.
func (g *Generator) DetermineRarity(egg models.EggType) models.Rarity {
	pool, ok := g.cfg.EggPools[egg]
	if !ok {
		pool = g.cfg.EggPools[models.EggCommon]
	}
	return weightedRarity(pool, g.rng)
}

func weightedRarity(pool []config.RarityWeight, rng RandomSource) models.Rarity {
	var total float64
	for _, w := range pool {
		total += w.Weight
	}
	roll := rng.Float64() * total
	for _, w := range pool {
		roll -= w.Weight
		if roll < 0 {
			return w.Rarity
		}
	}
	// Float edge: roll landed exactly on total.
	return pool[len(pool)-1].Rarity
}

// RollShiny draws the shiny flag, independent of rarity.
func (g *Generator) RollShiny() bool {
	return g.rng.Float64() < g.cfg.ShinyChance
}

// Generate rolls a complete pet draft for the given egg tier.
func (g *Generator) Generate(egg models.EggType) PetDraft {
	rarity := g.DetermineRarity(egg)
	shiny := g.RollShiny()

	pool := g.cfg.SpeciesPool(rarity)
	species := pool[g.rng.IntN(len(pool))]

	prefixes := g.cfg.NamePrefixes[rarity]
	name := species
	if len(prefixes) > 0 {
		name = fmt.Sprintf("%s %s", prefixes[g.rng.IntN(len(prefixes))], species)
	}

	emoji, ok := config.PetEmojis[species]
	if !ok {
		emoji = "🐾"
	}

	info := g.cfg.Rarities[rarity]
	income := info.BaseIncome
	power := info.BasePower
	if shiny {
		income = int(float64(income) * g.cfg.ShinyMultiplier)
		power = int(float64(power) * g.cfg.ShinyMultiplier)
	}

	loyalty := g.cfg.LoyaltyMin + g.rng.IntN(g.cfg.LoyaltyMax-g.cfg.LoyaltyMin+1)

	return PetDraft{
		Name:          name,
		Species:       species,
		Rarity:        rarity,
		Emoji:         emoji,
		Level:         1,
		Power:         power,
		IncomePerHour: income,
		Stamina:       100,
		Loyalty:       loyalty,
		IsShiny:       shiny,
	}
}

// PetValue prices a pet for trading and collection stats.
func PetValue(cfg *config.GameConfig, rarity models.Rarity, level int, shiny bool) int64 {
	base := cfg.Rarities[rarity].BaseValue
	if base == 0 {
		base = cfg.Rarities[models.RarityCommon].BaseValue
	}
	value := float64(base) * (1 + float64(level)*0.1)
	if shiny {
		value *= 2
	}
	return int64(value)
}
