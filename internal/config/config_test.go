package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "CATALOG_DRIVER", "DB_PATH", "DATABASE_URL", "SEED_PATH",
		"SEED_ON_START", "CACHE_BACKEND", "REDIS_URL", "CACHE_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSqlite, cfg.CatalogDriver)
	assert.Equal(t, "data/catalog.db", cfg.DBPath)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.SeedOnStart)
}

func TestLoadRedisURLSelectsRedis(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.CacheBackend)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without url": {"CATALOG_DRIVER": "postgres"},
		"unknown driver":       {"CATALOG_DRIVER": "mysql"},
		"bad ttl":              {"CACHE_TTL": "soon"},
		"redis without url":    {"CACHE_BACKEND": "redis"},
		"db cache on memory":   {"CATALOG_DRIVER": "memory", "CACHE_BACKEND": "db"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
