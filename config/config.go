package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds everything read from the environment at boot.
// Game balance lives in GameConfig, not here.
type Settings struct {
	DatabaseURL     string   `env:"DATABASE_URL,required"`
	ListenAddr      string   `env:"LISTEN_ADDR" envDefault:":5300"`
	BotServiceToken string   `env:"BOT_SERVICE_TOKEN,required"`
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AdminIDs        []int64  `env:"ADMIN_IDS" envSeparator:","`
	Debug           bool     `env:"DEBUG" envDefault:"false"`
}

// LoadSettings parses Settings from the environment (after godotenv has run).
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &s, nil
}
