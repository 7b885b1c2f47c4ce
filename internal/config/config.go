package config

import (
	"os"
)

// Storage backend selectors
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Storage
	StorageBackend string // "file" (default) or "postgres"
	DataFile       string // flat JSON dataset, file backend only
	DatabaseURL    string // postgres backend only
	TablePrefix    string
	// Sessions
	SessionSecret string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StorageBackend: getEnv("STORAGE_BACKEND", StorageFile),
		DataFile:       getEnv("DATA_FILE", "data/storage.json"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		TablePrefix:    getTablePrefix(env),
		SessionSecret:  getEnv("SESSION_SECRET", "noion-dev-secret"),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
