package services

import (
	"testing"
	"time"

	"pet-empire-bot/config"
	"pet-empire-bot/models"
)

func TestStartMission(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	user := newTestUser(t, db, cfg, 1)
	pet := newTestPet(t, db, user.UserID, nil)
	svc := NewMissionService(db, cfg, fixedRNG{0.5})

	mission, err := svc.Start(user.UserID, pet.ID, models.MissionQuick)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if mission.Status != models.MissionActive {
		t.Fatalf("status = %s, want active", mission.Status)
	}
	// Level 1 Common: 50 * 1.05 coins, 20 * 1.05 exp.
	if mission.RewardCoins != 52 || mission.RewardExp != 21 {
		t.Fatalf("rewards = %d/%d, want 52/21", mission.RewardCoins, mission.RewardExp)
	}
	if got := reloadPet(t, db, pet.ID).Activity; got != models.ActivityMission {
		t.Fatalf("pet activity = %s, want mission", got)
	}

	// The busy pet cannot start another mission.
	if _, err := svc.Start(user.UserID, pet.ID, models.MissionQuick); !IsValidation(err) {
		t.Fatalf("double start: got %v, want validation error", err)
	}
}

func TestStartMissionRejections(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	user := newTestUser(t, db, cfg, 2)
	svc := NewMissionService(db, cfg, fixedRNG{0.5})

	if _, err := svc.Start(user.UserID, "nope", models.MissionQuick); IsValidation(err) || err == nil {
		t.Fatalf("missing pet: got %v, want not-found", err)
	}

	pet := newTestPet(t, db, user.UserID, nil)
	if _, err := svc.Start(user.UserID, pet.ID, "impossible"); !IsValidation(err) {
		t.Fatalf("unknown tier: got %v, want validation error", err)
	}

	tired := newTestPet(t, db, user.UserID, func(p *models.Pet) {
		until := time.Now().Add(time.Hour)
		p.FatigueUntil = &until
	})
	if _, err := svc.Start(user.UserID, tired.ID, models.MissionQuick); !IsValidation(err) {
		t.Fatalf("fatigued pet: got %v, want validation error", err)
	}

	defending := newTestPet(t, db, user.UserID, func(p *models.Pet) { p.Activity = models.ActivityDefending })
	if _, err := svc.Start(user.UserID, defending.ID, models.MissionQuick); !IsValidation(err) {
		t.Fatalf("defending pet: got %v, want validation error", err)
	}
}

func TestResolveSuccessPaysOut(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	user := newTestUser(t, db, cfg, 3)
	pet := newTestPet(t, db, user.UserID, nil)
	svc := NewMissionService(db, cfg, fixedRNG{0.0}) // 0.0 < chance: always succeeds

	mission, err := svc.Start(user.UserID, pet.ID, models.MissionQuick)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Not due yet.
	if _, err := svc.Resolve(mission.ID); !IsValidation(err) {
		t.Fatalf("early resolve: got %v, want validation error", err)
	}

	db.Model(&models.Mission{}).Where("id = ?", mission.ID).
		Update("complete_at", time.Now().Add(-time.Minute))

	outcome, err := svc.Resolve(mission.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !outcome.Success || outcome.Coins != 52 {
		t.Fatalf("outcome = %+v, want success with 52 coins", outcome)
	}

	after := reloadUser(t, db, user.UserID)
	// 52 mission coins plus the first_mission achievement's 100.
	if after.Coins != cfg.StartingCoins+52+100 {
		t.Fatalf("coins = %d, want %d", after.Coins, cfg.StartingCoins+52+100)
	}
	if after.Exp != 2 { // 21 / 10 user exp share
		t.Fatalf("user exp = %d, want 2", after.Exp)
	}

	petAfter := reloadPet(t, db, pet.ID)
	if petAfter.Activity != models.ActivityIdle {
		t.Fatalf("pet activity = %s, want idle", petAfter.Activity)
	}
	if petAfter.Exp != 21 {
		t.Fatalf("pet exp = %d, want 21", petAfter.Exp)
	}

	// Terminal: a second resolve is rejected.
	if _, err := svc.Resolve(mission.ID); !IsValidation(err) {
		t.Fatalf("double resolve: got %v, want validation error", err)
	}
}

func TestResolveFailurePaysReducedAndFatigues(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	user := newTestUser(t, db, cfg, 4)
	pet := newTestPet(t, db, user.UserID, nil)
	svc := NewMissionService(db, cfg, fixedRNG{0.999}) // above any success chance

	mission, err := svc.Start(user.UserID, pet.ID, models.MissionQuick)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	db.Model(&models.Mission{}).Where("id = ?", mission.ID).
		Update("complete_at", time.Now().Add(-time.Minute))

	outcome, err := svc.Resolve(mission.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if outcome.Success {
		t.Fatal("expected a failed mission")
	}
	if outcome.Coins != 10 { // 20% of 52
		t.Fatalf("consolation = %d, want 10", outcome.Coins)
	}

	if got := reloadUser(t, db, user.UserID).Coins; got != cfg.StartingCoins+10 {
		t.Fatalf("coins = %d, want %d", got, cfg.StartingCoins+10)
	}

	petAfter := reloadPet(t, db, pet.ID)
	if petAfter.Activity != models.ActivityIdle {
		t.Fatalf("pet activity = %s, want idle", petAfter.Activity)
	}
	if !petAfter.Fatigued(time.Now()) {
		t.Fatal("failed mission should fatigue the pet")
	}
}

func TestCancelMission(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	user := newTestUser(t, db, cfg, 5)
	pet := newTestPet(t, db, user.UserID, nil)
	svc := NewMissionService(db, cfg, fixedRNG{0.5})

	mission, err := svc.Start(user.UserID, pet.ID, models.MissionLong)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := svc.Cancel(user.UserID, mission.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	petAfter := reloadPet(t, db, pet.ID)
	if petAfter.Activity != models.ActivityIdle || !petAfter.Fatigued(time.Now()) {
		t.Fatalf("cancelled pet = %s fatigued=%v, want idle and tired", petAfter.Activity, petAfter.Fatigued(time.Now()))
	}

	if err := svc.Cancel(user.UserID, mission.ID); !IsValidation(err) {
		t.Fatalf("double cancel: got %v, want validation error", err)
	}
}

func TestSkipAheadSpendsStars(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	user := newTestUser(t, db, cfg, 6)
	pet := newTestPet(t, db, user.UserID, nil)
	svc := NewMissionService(db, cfg, fixedRNG{0.0})

	mission, err := svc.Start(user.UserID, pet.ID, models.MissionQuick)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := svc.SkipAhead(user.UserID, mission.ID); !IsValidation(err) {
		t.Fatalf("no stars: got %v, want validation error", err)
	}

	db.Model(&models.User{}).Where("user_id = ?", user.UserID).Update("stars", 100)
	cost, err := svc.SkipAhead(user.UserID, mission.ID)
	if err != nil {
		t.Fatalf("SkipAhead: %v", err)
	}
	if cost != cfg.SkipCostMin { // 30 minutes remaining prices at the floor
		t.Fatalf("cost = %d, want %d", cost, cfg.SkipCostMin)
	}
	if got := reloadUser(t, db, user.UserID).Stars; got != 100-cost {
		t.Fatalf("stars = %d, want %d", got, 100-cost)
	}

	// Skipped mission is due right away.
	if _, err := svc.Resolve(mission.ID); err != nil {
		t.Fatalf("resolve after skip: %v", err)
	}
}

func TestResolveDueSweepSkipsBadRecords(t *testing.T) {
	db := newTestDB(t)
	cfg := config.DefaultGameConfig()
	if err := NewAchievementService(db, cfg).Seed(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	user := newTestUser(t, db, cfg, 7)
	svc := NewMissionService(db, cfg, fixedRNG{0.0})

	good := newTestPet(t, db, user.UserID, nil)
	bad := newTestPet(t, db, user.UserID, nil)

	m1, err := svc.Start(user.UserID, good.ID, models.MissionQuick)
	if err != nil {
		t.Fatalf("start m1: %v", err)
	}
	m2, err := svc.Start(user.UserID, bad.ID, models.MissionQuick)
	if err != nil {
		t.Fatalf("start m2: %v", err)
	}

	past := time.Now().Add(-time.Minute)
	db.Model(&models.Mission{}).Where("id IN ?", []string{m1.ID, m2.ID}).
		Update("complete_at", past)

	// Orphan the second mission's pet.
	db.Delete(&models.Pet{}, "id = ?", bad.ID)

	if resolved := svc.ResolveDue(); resolved != 1 {
		t.Fatalf("resolved = %d, want 1", resolved)
	}

	// Fresh dest struct per lookup: reusing one would smuggle the previous
	// primary key into the next query's conditions.
	var first models.Mission
	if err := db.Where("id = ?", m1.ID).First(&first).Error; err != nil {
		t.Fatalf("reload m1: %v", err)
	}
	if first.Status != models.MissionCompleted {
		t.Fatalf("good mission = %s, want completed", first.Status)
	}
	var second models.Mission
	if err := db.Where("id = ?", m2.ID).First(&second).Error; err != nil {
		t.Fatalf("reload m2: %v", err)
	}
	if second.Status != models.MissionActive {
		t.Fatalf("orphaned mission = %s, want still active", second.Status)
	}
}
