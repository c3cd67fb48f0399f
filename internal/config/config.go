package config

import (
	"os"
	"strconv"

	"github.com/LabpsicofisioUCU/ViCC/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Search   SearchConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// DataConfig holds the stimulus table and protocol locations
type DataConfig struct {
	TableFile    string
	ProtocolFile string
}

// SearchConfig holds the feasibility and search run parameters
type SearchConfig struct {
	Workers     int   // concurrently running workers per round (W)
	ChunkLength int   // sequential attempts per worker per round (C)
	Trials      int   // feasibility trials
	Seed        int64 // base seed for deterministic RNG streams
}

// DatabaseConfig holds the optional selection store settings
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data: DataConfig{
			TableFile:    getEnvOrDefault("TABLE_FILE", ""),
			ProtocolFile: getEnvOrDefault("PROTOCOL_FILE", ""),
		},
		Search: SearchConfig{
			Workers:     getEnvIntOrDefault("SEARCH_WORKERS", 8),
			ChunkLength: getEnvIntOrDefault("SEARCH_CHUNK", 250),
			Trials:      getEnvIntOrDefault("FEASIBILITY_TRIALS", 1000),
			Seed:        getEnvInt64OrDefault("SEARCH_SEED", 42),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Search.Workers <= 0 {
		return errors.ConfigInvalid("SEARCH_WORKERS must be positive")
	}
	if config.Search.ChunkLength <= 0 {
		return errors.ConfigInvalid("SEARCH_CHUNK must be positive")
	}
	if config.Search.Trials <= 0 {
		return errors.ConfigInvalid("FEASIBILITY_TRIALS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
