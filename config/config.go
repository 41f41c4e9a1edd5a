package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Database configuration
	DatabaseURL string

	// Prayer time source configuration
	MuslimSalatAPIKey  string
	MuslimSalatBaseURL string

	// Scheduler configuration
	PollInterval time.Duration // how often each guild loop wakes

	// Voice configuration
	AdhanPath string // DCA encoded adhan audio served into voice channels

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from a local .env file and the environment
func load() (*Config, error) {
	// A missing .env is fine, the environment may carry everything
	_ = godotenv.Load()

	config := &Config{
		DiscordToken:       os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		MuslimSalatAPIKey:  os.Getenv("MUSLIMSALAT_API_KEY"),
		MuslimSalatBaseURL: "https://muslimsalat.com",

		PollInterval: 60 * time.Second,
		AdhanPath:    "assets/adhan.dca",

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if baseURL := os.Getenv("MUSLIMSALAT_BASE_URL"); baseURL != "" {
		config.MuslimSalatBaseURL = baseURL
	}
	if adhanPath := os.Getenv("ADHAN_PATH"); adhanPath != "" {
		config.AdhanPath = adhanPath
	}

	// Poll interval trades notification latency against remote API load
	if interval := os.Getenv("POLL_INTERVAL_SECONDS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.PollInterval = time.Duration(parsed) * time.Second
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
