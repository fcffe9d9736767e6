package game

import (
	"testing"

	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

func TestExpForNextLevel(t *testing.T) {
	cfg := config.DefaultGameConfig()

	cases := []struct {
		level int
		want  int64
	}{
		{0, 100},
		{1, 110},
		{2, 121},
		{5, 161},
	}
	for _, c := range cases {
		if got := ExpForNextLevel(cfg, c.level); got != c.want {
			t.Errorf("ExpForNextLevel(%d) = %d, want %d", c.level, got, c.want)
		}
	}
}

func TestApplyExperienceExactLevelUp(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pet := &models.Pet{Level: 1, Power: 5, IncomePerHour: 100}

	result := ApplyExperience(cfg, pet, 110)

	if result.LevelsGained != 1 || pet.Level != 2 {
		t.Fatalf("levels gained = %d, level = %d; want 1, 2", result.LevelsGained, pet.Level)
	}
	if pet.Exp != 0 {
		t.Fatalf("leftover exp = %d, want 0", pet.Exp)
	}
	if pet.Power != 7 { // +2 per level
		t.Fatalf("power = %d, want 7", pet.Power)
	}
	if pet.IncomePerHour != 105 { // *1.05 per level
		t.Fatalf("income = %d, want 105", pet.IncomePerHour)
	}
	if result.Evolved {
		t.Fatal("level 2 is not an evolution level")
	}
}

func TestApplyExperienceMultipleLevels(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pet := &models.Pet{Level: 1, Power: 5, IncomePerHour: 100}

	// 110 to leave level 1, 121 to leave level 2.
	result := ApplyExperience(cfg, pet, 231)

	if result.LevelsGained != 2 || pet.Level != 3 {
		t.Fatalf("levels gained = %d, level = %d; want 2, 3", result.LevelsGained, pet.Level)
	}
	if pet.Exp != 0 {
		t.Fatalf("leftover exp = %d, want 0", pet.Exp)
	}
	if pet.Power != 9 {
		t.Fatalf("power = %d, want 9", pet.Power)
	}
}

func TestApplyExperienceEvolution(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pet := &models.Pet{Level: 9, Power: 5, IncomePerHour: 10}

	result := ApplyExperience(cfg, pet, ExpForNextLevel(cfg, 9))

	if pet.Level != 10 {
		t.Fatalf("level = %d, want 10", pet.Level)
	}
	if !result.Evolved || pet.EvolutionStage != 1 {
		t.Fatalf("evolved = %v, stage = %d; want true, 1", result.Evolved, pet.EvolutionStage)
	}
}

func TestApplyExperienceLevelCap(t *testing.T) {
	cfg := config.DefaultGameConfig()
	pet := &models.Pet{Level: cfg.MaxPetLevel, Power: 205, IncomePerHour: 1000}

	result := ApplyExperience(cfg, pet, 1_000_000)

	if result.LevelsGained != 0 || pet.Level != cfg.MaxPetLevel {
		t.Fatalf("capped pet leveled: gained = %d, level = %d", result.LevelsGained, pet.Level)
	}
	if pet.Exp != 1_000_000 {
		t.Fatalf("surplus exp = %d, want retained", pet.Exp)
	}
}
