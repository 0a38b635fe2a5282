// Package config loads scraper settings from the environment
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slices"
)

const (
	EngineBrowser = "browser"
	EngineHTTP    = "http"

	// FailureModeEmpty renders failed scrapes as {}
	FailureModeEmpty = "empty"
	// FailureModeError renders failed scrapes with their error and kind
	FailureModeError = "error"
)

// Config holds every tunable of the scraper
type Config struct {
	Scraper ScraperConfig
	Log     LogConfig
	Redis   RedisConfig
	Port    string `env:"PORT" env-default:"8000"`
}

// ScraperConfig controls how a single query is scraped
type ScraperConfig struct {
	Engine   string `env:"SCRAPER_ENGINE" env-default:"browser"`
	Headless bool   `env:"SCRAPER_HEADLESS" env-default:"true"`

	// ChromePath empty means Chrome is looked up on PATH
	ChromePath string `env:"SCRAPER_CHROME_PATH"`

	SettleDelay  time.Duration `env:"SCRAPER_SETTLE_DELAY" env-default:"3s"`
	ReadyTimeout time.Duration `env:"SCRAPER_READY_TIMEOUT" env-default:"10s"`

	// Timeout of 0 leaves a scrape without a deadline
	Timeout time.Duration `env:"SCRAPER_TIMEOUT" env-default:"0s"`

	// Region empty adds no region parameters
	Region string `env:"SCRAPER_REGION"`

	FailureMode string `env:"SCRAPER_FAILURE_MODE" env-default:"empty"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"warn"`
	File  string `env:"LOG_FILE"`
}

// RedisConfig is only used by the HTTP server; an empty Addr disables caching
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"12h"`
}

// RegionParams returns the region parameters for the configured region code.
// Unknown codes yield the zero value, which adds no parameters.
func (c ScraperConfig) RegionParams() RegionConfig {
	return RegionConfigs[c.Region]
}

// Defaults returns the configuration used when the environment sets nothing
func Defaults() *Config {
	return &Config{
		Scraper: ScraperConfig{
			Engine:       EngineBrowser,
			Headless:     true,
			SettleDelay:  3 * time.Second,
			ReadyTimeout: 10 * time.Second,
			FailureMode:  FailureModeEmpty,
		},
		Log:   LogConfig{Level: "warn"},
		Redis: RedisConfig{TTL: 12 * time.Hour},
		Port:  "8000",
	}
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the scraper cannot act on
func (c *Config) Validate() error {
	if !slices.Contains([]string{EngineBrowser, EngineHTTP}, c.Scraper.Engine) {
		return fmt.Errorf("unknown scraper engine: %q", c.Scraper.Engine)
	}
	if !slices.Contains([]string{FailureModeEmpty, FailureModeError}, c.Scraper.FailureMode) {
		return fmt.Errorf("unknown failure mode: %q", c.Scraper.FailureMode)
	}
	if c.Scraper.Region != "" {
		if _, ok := RegionConfigs[c.Scraper.Region]; !ok {
			return fmt.Errorf("invalid region code: %q", c.Scraper.Region)
		}
	}
	if c.Scraper.SettleDelay < 0 || c.Scraper.ReadyTimeout < 0 || c.Scraper.Timeout < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
