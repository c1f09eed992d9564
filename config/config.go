package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Hour in UTC at which the daily recompute runs (0-23)
	RecomputeHourUTC int

	// Default country code for phone normalization in wa.me links
	DefaultCountry string

	// Environment
	Environment string // "development", "production" or "test"
	LogLevel    string
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

// load loads configuration from the environment, with an optional .env file
func load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RecomputeHourUTC: 7,
		DefaultCountry:   "MX",
		Environment:      os.Getenv("ENVIRONMENT"),
		LogLevel:         os.Getenv("LOG_LEVEL"),
	}

	if hour := os.Getenv("RECOMPUTE_HOUR_UTC"); hour != "" {
		parsed, err := strconv.Atoi(hour)
		if err != nil || parsed < 0 || parsed > 23 {
			return nil, fmt.Errorf("RECOMPUTE_HOUR_UTC must be an hour between 0 and 23, got %q", hour)
		}
		config.RecomputeHourUTC = parsed
	}

	if country := os.Getenv("DEFAULT_COUNTRY"); country != "" {
		config.DefaultCountry = country
	}

	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
