package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds process settings read from the environment.
type Config struct {
	Port          string
	CatalogDriver string
	DBPath        string
	DatabaseURL   string
	SeedPath      string
	SeedOnStart   bool
	CacheBackend  string
	RedisURL      string
	CacheTTL      time.Duration
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv reads .env when present. A missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Load reads and validates the service configuration.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		CatalogDriver: strings.ToLower(Get("CATALOG_DRIVER", DriverSqlite)),
		DBPath:        Get("DB_PATH", "data/catalog.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SeedPath:      Get("SEED_PATH", "data/seeds/places.json"),
		SeedOnStart:   Get("SEED_ON_START", "true") == "true",
		RedisURL:      os.Getenv("REDIS_URL"),
	}

	ttl, err := time.ParseDuration(Get("CACHE_TTL", "10m"))
	if err != nil {
		return Config{}, fmt.Errorf("config: CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	switch cfg.CatalogDriver {
	case DriverSqlite, DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required for CATALOG_DRIVER=%s", DriverPostgres)
		}
	default:
		return Config{}, fmt.Errorf("config: unknown CATALOG_DRIVER %q", cfg.CatalogDriver)
	}

	defaultBackend := "memory"
	if cfg.RedisURL != "" {
		defaultBackend = "redis"
	}
	cfg.CacheBackend = strings.ToLower(Get("CACHE_BACKEND", defaultBackend))

	switch cfg.CacheBackend {
	case "none", "memory":
	case "redis":
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("config: REDIS_URL is required for CACHE_BACKEND=redis")
		}
	case "db":
		if cfg.CatalogDriver == DriverMemory {
			return Config{}, fmt.Errorf("config: CACHE_BACKEND=db needs a sqlite or postgres catalog")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}

	return cfg, nil
}
