package services

import (
	"testing"

	"pet-empire-bot/config"
	"pet-empire-bot/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedRNG pins every draw in a test; IntN always picks index 0.
type fixedRNG struct{ v float64 }

func (f fixedRNG) Float64() float64 { return f.v }
func (f fixedRNG) IntN(n int) int   { return 0 }

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Mission{},
		&models.Raid{},
		&models.Achievement{},
		&models.AchievementProgress{},
		&models.Trade{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, cfg *config.GameConfig, id int64) *models.User {
	t.Helper()
	user, err := NewUserService(db, cfg).GetOrCreate(id, nil, nil)
	if err != nil {
		t.Fatalf("create user %d: %v", id, err)
	}
	return user
}

func newTestPet(t *testing.T, db *gorm.DB, ownerID int64, mutate func(*models.Pet)) *models.Pet {
	t.Helper()
	pet := models.Pet{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          "Little Cat",
		Species:       "Cat",
		Rarity:        models.RarityCommon,
		Emoji:         "🐱",
		Level:         1,
		Power:         5,
		IncomePerHour: 10,
		Stamina:       100,
		Loyalty:       50,
		Activity:      models.ActivityIdle,
		ObtainedFrom:  "egg",
	}
	if mutate != nil {
		mutate(&pet)
	}
	if err := db.Create(&pet).Error; err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return &pet
}

func reloadUser(t *testing.T, db *gorm.DB, id int64) *models.User {
	t.Helper()
	var user models.User
	if err := db.Where("user_id = ?", id).First(&user).Error; err != nil {
		t.Fatalf("reload user %d: %v", id, err)
	}
	return &user
}

func reloadPet(t *testing.T, db *gorm.DB, id string) *models.Pet {
	t.Helper()
	var pet models.Pet
	if err := db.Where("id = ?", id).First(&pet).Error; err != nil {
		t.Fatalf("reload pet %s: %v", id, err)
	}
	return &pet
}
