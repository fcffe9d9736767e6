package services

import (
	"testing"
	"time"

	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

func TestRaidWinStealsAndShields(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	attacker := newTestUser(t, db, cfg, 1)
	defender := newTestUser(t, db, cfg, 2)

	strong := newTestPet(t, db, attacker.UserID, func(p *models.Pet) {
		p.Power = 100
		p.Level = 10
	})
	loot := newTestPet(t, db, defender.UserID, nil) // idle, Common, loyalty 50

	// 0.5 kills the jitter; 1000 vs 0 clamps to 0.90 and the 0.5 draw wins.
	svc := NewRaidService(db, cfg, fixedRNG{0.5})
	outcome, err := svc.Execute(attacker.UserID, defender.UserID, []string{strong.ID})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !outcome.Success {
		t.Fatal("expected a win")
	}
	if outcome.AttackPower != 1000 || outcome.DefensePower != 0 {
		t.Fatalf("powers = %d/%d, want 1000/0", outcome.AttackPower, outcome.DefensePower)
	}
	if outcome.WinChance != cfg.RaidChanceMax {
		t.Fatalf("chance = %f, want clamp %f", outcome.WinChance, cfg.RaidChanceMax)
	}

	if outcome.StolenPet == nil || outcome.StolenPet.ID != loot.ID {
		t.Fatalf("stolen = %+v, want pet %s", outcome.StolenPet, loot.ID)
	}
	if got := reloadPet(t, db, loot.ID); got.OwnerID != attacker.UserID || got.ObtainedFrom != "raid" {
		t.Fatalf("loot owner/source = %d/%s, want %d/raid", got.OwnerID, got.ObtainedFrom, attacker.UserID)
	}

	attackerAfter := reloadUser(t, db, attacker.UserID)
	if attackerAfter.FreeRaidsToday != cfg.DailyFreeRaids-1 {
		t.Fatalf("free raids = %d, want %d", attackerAfter.FreeRaidsToday, cfg.DailyFreeRaids-1)
	}
	if !attackerAfter.Shielded(time.Now()) {
		t.Fatal("winner should be shielded")
	}
	if attackerAfter.RaidsWon != 1 {
		t.Fatalf("raids won = %d, want 1", attackerAfter.RaidsWon)
	}
	// The first_raid reward must survive the stat save at the end of the raid.
	if attackerAfter.Coins != cfg.StartingCoins+200 {
		t.Fatalf("attacker coins = %d, want %d", attackerAfter.Coins, cfg.StartingCoins+200)
	}
	if got := reloadUser(t, db, defender.UserID).DefensesLost; got != 1 {
		t.Fatalf("defenses lost = %d, want 1", got)
	}

	var raid models.Raid
	if err := db.Where("attacker_id = ?", attacker.UserID).First(&raid).Error; err != nil {
		t.Fatalf("raid log: %v", err)
	}
	if raid.Result != models.RaidWin || raid.StolenPetID == nil {
		t.Fatalf("raid row = %+v, want win with stolen pet", raid)
	}

	// Same pair again inside the cooldown window.
	if _, err := svc.Execute(attacker.UserID, defender.UserID, []string{strong.ID}); !IsValidation(err) {
		t.Fatalf("cooldown: got %v, want validation error", err)
	}
}

func TestRaidLossFatiguesSquad(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	attacker := newTestUser(t, db, cfg, 3)
	defender := newTestUser(t, db, cfg, 4)

	weak := newTestPet(t, db, attacker.UserID, func(p *models.Pet) {
		p.Power = 1
		p.Level = 1
	})
	newTestPet(t, db, defender.UserID, func(p *models.Pet) {
		p.Power = 500
		p.Level = 10
		p.Activity = models.ActivityDefending
	})

	// 1 vs 5000 clamps to 0.10; the 0.5 draw loses.
	svc := NewRaidService(db, cfg, fixedRNG{0.5})
	outcome, err := svc.Execute(attacker.UserID, defender.UserID, []string{weak.ID})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if outcome.Success {
		t.Fatal("expected a loss")
	}
	if outcome.WinChance != cfg.RaidChanceMin {
		t.Fatalf("chance = %f, want clamp %f", outcome.WinChance, cfg.RaidChanceMin)
	}

	if !reloadPet(t, db, weak.ID).Fatigued(time.Now()) {
		t.Fatal("losing squad should be fatigued")
	}
	attackerAfter := reloadUser(t, db, attacker.UserID)
	if attackerAfter.RaidsLost != 1 {
		t.Fatalf("raids lost = %d, want 1", attackerAfter.RaidsLost)
	}
	// A lost raid still counts as attempted; its reward must not be clobbered.
	if attackerAfter.Coins != cfg.StartingCoins+200 {
		t.Fatalf("attacker coins = %d, want %d", attackerAfter.Coins, cfg.StartingCoins+200)
	}
	if got := reloadUser(t, db, defender.UserID).DefensesWon; got != 1 {
		t.Fatalf("defenses won = %d, want 1", got)
	}
}

func TestRaidPreconditions(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	attacker := newTestUser(t, db, cfg, 5)
	defender := newTestUser(t, db, cfg, 6)
	pet := newTestPet(t, db, attacker.UserID, nil)
	svc := NewRaidService(db, cfg, fixedRNG{0.5})

	if _, err := svc.Execute(attacker.UserID, attacker.UserID, []string{pet.ID}); !IsValidation(err) {
		t.Fatalf("self raid: got %v, want validation error", err)
	}

	// Shielded target.
	shield := time.Now().Add(time.Hour)
	db.Model(&models.User{}).Where("user_id = ?", defender.UserID).Update("shield_until", shield)
	if _, err := svc.Execute(attacker.UserID, defender.UserID, []string{pet.ID}); !IsValidation(err) {
		t.Fatalf("shielded target: got %v, want validation error", err)
	}
	db.Model(&models.User{}).Where("user_id = ?", defender.UserID).Update("shield_until", nil)

	// Exhausted daily counter, reset already seen today.
	now := time.Now()
	db.Model(&models.User{}).Where("user_id = ?", attacker.UserID).
		Updates(map[string]interface{}{"free_raids_today": 0, "last_raid_reset": now})
	if _, err := svc.Execute(attacker.UserID, defender.UserID, []string{pet.ID}); !IsValidation(err) {
		t.Fatalf("no raids left: got %v, want validation error", err)
	}

	// A new calendar day refills the counter.
	yesterday := now.Add(-24 * time.Hour)
	db.Model(&models.User{}).Where("user_id = ?", attacker.UserID).Update("last_raid_reset", yesterday)
	if err := svc.CheckEligibility(attacker.UserID, defender.UserID); err != nil {
		t.Fatalf("after daily reset: %v", err)
	}

	// Empty squad.
	if _, err := svc.Execute(attacker.UserID, defender.UserID, nil); !IsValidation(err) {
		t.Fatalf("empty squad: got %v, want validation error", err)
	}
}

func TestMythicalNeverStolen(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	attacker := newTestUser(t, db, cfg, 7)
	defender := newTestUser(t, db, cfg, 8)

	strong := newTestPet(t, db, attacker.UserID, func(p *models.Pet) {
		p.Power = 100
		p.Level = 10
	})
	treasure := newTestPet(t, db, defender.UserID, func(p *models.Pet) {
		p.Rarity = models.RarityMythical
	})

	svc := NewRaidService(db, cfg, fixedRNG{0.5})
	outcome, err := svc.Execute(attacker.UserID, defender.UserID, []string{strong.ID})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !outcome.Success {
		t.Fatal("expected a win")
	}
	if outcome.StolenPet != nil {
		t.Fatalf("stole %s, mythical pets are untouchable", outcome.StolenPet.ID)
	}
	if got := reloadPet(t, db, treasure.ID).OwnerID; got != defender.UserID {
		t.Fatalf("mythical owner = %d, want %d", got, defender.UserID)
	}
}

func TestBuyTrapScalesCost(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	user := newTestUser(t, db, cfg, 9)
	svc := NewRaidService(db, cfg, nil)

	level, err := svc.BuyTrap(user.UserID, models.TrapBasicWall)
	if err != nil || level != 1 {
		t.Fatalf("first trap = %d/%v, want 1/nil", level, err)
	}
	level, err = svc.BuyTrap(user.UserID, models.TrapBasicWall)
	if err != nil || level != 2 {
		t.Fatalf("second trap = %d/%v, want 2/nil", level, err)
	}
	// 100 + 200 spent from the starting 1000.
	if got := reloadUser(t, db, user.UserID).Coins; got != cfg.StartingCoins-300 {
		t.Fatalf("coins = %d, want %d", got, cfg.StartingCoins-300)
	}

	if _, err := svc.BuyTrap(user.UserID, "bogus"); !IsValidation(err) {
		t.Fatalf("unknown trap: got %v, want validation error", err)
	}
	if _, err := svc.BuyTrap(user.UserID, models.TrapLaserGrid); !IsValidation(err) {
		t.Fatalf("unaffordable trap: got %v, want validation error", err)
	}
}

func TestTargetsFiltersShieldAndLevel(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	attacker := newTestUser(t, db, cfg, 10)

	inRange := newTestUser(t, db, cfg, 11)
	shielded := newTestUser(t, db, cfg, 12)
	shield := time.Now().Add(time.Hour)
	db.Model(&models.User{}).Where("user_id = ?", shielded.UserID).Update("shield_until", shield)
	outOfRange := newTestUser(t, db, cfg, 13)
	db.Model(&models.User{}).Where("user_id = ?", outOfRange.UserID).Update("level", 50)

	svc := NewRaidService(db, cfg, nil)
	targets, err := svc.Targets(attacker.UserID, 10)
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if len(targets) != 1 || targets[0].UserID != inRange.UserID {
		ids := make([]int64, 0, len(targets))
		for _, u := range targets {
			ids = append(ids, u.UserID)
		}
		t.Fatalf("targets = %v, want only %d", ids, inRange.UserID)
	}
}
