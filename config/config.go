package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v6"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string   `env:"DISCORD_TOKEN"`
	OwnerIDs     []string `env:"OWNER_IDS" envSeparator:","`

	// Database configuration
	DatabaseURL string `env:"DATABASE_URL"`

	// Command configuration
	DefaultPrefix string `env:"DEFAULT_PREFIX" envDefault:"!"`

	// Economy configuration
	MessageReward float64 `env:"MESSAGE_REWARD" envDefault:"0.25"`

	// AllowDebt keeps the source behavior of letting forced debits
	// (extreme coinflip losses, escalation losses) drive a balance below
	// zero. When false those debits floor at 0.
	AllowDebt bool `env:"ALLOW_DEBT" envDefault:"true"`

	// Environment is "development", "production" or "test"
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance. Get never validates, so
// tests can run without a token; Load performs validation at startup.
func Get() *Config {
	once.Do(func() {
		cfg := &Config{}
		if err := env.Parse(cfg); err != nil {
			cfg = &Config{DefaultPrefix: "!", AllowDebt: true, Environment: "test"}
		}
		instance = cfg
	})
	return instance
}

// Load parses configuration from environment variables and validates the
// required fields.
func Load() (*Config, error) {
	cfg := Get()

	if cfg.Environment != "test" {
		if cfg.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return cfg, nil
}

// IsOwner reports whether the given Discord user ID is in the configured
// owner list.
func (c *Config) IsOwner(userID string) bool {
	for _, id := range c.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}
