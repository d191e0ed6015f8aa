package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port    string
	BaseURL string
	Env     string

	// DatabaseDSN defaults to a local sqlite file; a postgres URL switches
	// drivers.
	DatabaseDSN string

	SessionSecret string

	GoogleClientID     string
	GoogleClientSecret string

	Migrations bool
	Seed       bool
}

// Load reads configuration from the environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by the caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:8080")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "file:gestion_ingresos.db")
	cfg.SessionSecret = getEnv("SESSION_SECRET", "")
	cfg.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", "")
	cfg.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", "")
	cfg.Migrations = ParseBool("RUN_MIGRATIONS", true)
	cfg.Seed = ParseBool("RUN_SEED", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
