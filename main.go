package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pet-empire-bot/config"
	"pet-empire-bot/handlers"
	"pet-empire-bot/middleware"
	"pet-empire-bot/models"
	"pet-empire-bot/services"
	"pet-empire-bot/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatal("❌ ", err)
	}
	gameCfg := config.DefaultGameConfig()

	app := fiber.New()

	// Only the bot gateway talks to this service.
	app.Use(middleware.GatewayAuthMiddleware(settings.BotServiceToken))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(settings.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-User-ID, X-Username, X-First-Name",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	db, err := gorm.Open(postgres.Open(settings.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.Mission{},
		&models.Raid{},
		&models.Achievement{},
		&models.AchievementProgress{},
		&models.Trade{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	userService := services.NewUserService(db, gameCfg)
	petService := services.NewPetService(db, gameCfg, nil)
	missionService := services.NewMissionService(db, gameCfg, nil)
	raidService := services.NewRaidService(db, gameCfg, nil)
	achievementService := services.NewAchievementService(db, gameCfg)
	tradeService := services.NewTradeService(db, gameCfg)

	if err := achievementService.Seed(); err != nil {
		log.Fatal("failed to seed achievements:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := workers.NewSweeper(missionService, tradeService)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			log.Printf("Sweeper error: %v", err)
		}
	}()

	handlers.SetupUserRoutes(app, userService)
	handlers.SetupPetRoutes(app, petService)
	handlers.SetupMissionRoutes(app, missionService)
	handlers.SetupRaidRoutes(app, raidService)
	handlers.SetupAchievementRoutes(app, achievementService)
	handlers.SetupTradeRoutes(app, tradeService)

	go func() {
		if err := app.Listen(settings.ListenAddr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", settings.ListenAddr)
	log.Println("✅ Mission/trade sweeper running (every 1m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from the bot gateway")
	log.Printf("✅ CORS configured for origins: %s", strings.Join(settings.AllowedOrigins, ","))

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
