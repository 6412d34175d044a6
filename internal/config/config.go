package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	GeminiAPIKey string        `env:"GEMINI_API_KEY"`
	PlayerModel  string        `env:"TIMEKEEPER_PLAYER_MODEL" envDefault:"gemini-2.5-flash"`
	TypingDelay  time.Duration `env:"TIMEKEEPER_TYPING_DELAY" envDefault:"30ms"`
	Plain        bool          `env:"TIMEKEEPER_PLAIN"`
	LogFile      string        `env:"TIMEKEEPER_LOG_FILE"`
	SimScript    string        `env:"TIMEKEEPER_SIM_SCRIPT"`
	SimMaxTurns  int           `env:"TIMEKEEPER_SIM_MAX_TURNS" envDefault:"200"`
}

// LoadConfig loads the configuration from a .env file, if present, and the
// environment. Variables already set in the environment win over .env.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TypingDelay < 0 {
		return nil, fmt.Errorf("TIMEKEEPER_TYPING_DELAY must not be negative, got %s", cfg.TypingDelay)
	}
	if cfg.SimMaxTurns <= 0 {
		return nil, fmt.Errorf("TIMEKEEPER_SIM_MAX_TURNS must be positive, got %d", cfg.SimMaxTurns)
	}
	return &cfg, nil
}

// RequireGemini reports an error when no Gemini API key is configured.
func (c *Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}
	return nil
}
