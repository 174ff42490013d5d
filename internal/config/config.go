// Package config loads runtime configuration from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the server's runtime settings.
type Config struct {
	Port     string
	LogLevel string
	// RulesDir points at a directory of federal_<year>.yaml catalog
	// overrides; empty means built-in catalogs only.
	RulesDir string
}

// Load reads configuration from the environment, after sourcing a .env file
// when one is present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		RulesDir: os.Getenv("RULES_DIR"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
