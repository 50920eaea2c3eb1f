package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath     string
	DataDir          string
	HeuristicsPath   string
	LogLevel         string
	Port             int
	DevMode          bool
	RevalueSchedule  string
	RevalueOnStartup bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvAsInt("PORT", 8010),
		DevMode:          getEnvAsBool("DEV_MODE", false),
		DatabasePath:     getEnv("DATABASE_PATH", "./data/valuations.db"),
		DataDir:          getEnv("COMPANY_DATA_DIR", "./data/companies"),
		HeuristicsPath:   getEnv("HEURISTICS_PATH", ""),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		RevalueSchedule:  getEnv("REVALUE_SCHEDULE", "0 0 6 * * *"), // 06:00 daily
		RevalueOnStartup: getEnvAsBool("REVALUE_ON_STARTUP", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("COMPANY_DATA_DIR is required")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
