package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	"trip-course-service/internal/adapters/cache"
	"trip-course-service/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seed = `[
	{"place_id": 1, "name": "Old Palace", "address": "1 Palace Rd", "lat": 37.58, "lon": 126.98,
	 "category": "palace", "city_id": 1, "ratings": [4.5]},
	{"place_id": 2, "name": "Noodle Bar", "address": "2 Palace Rd", "lat": 37.581, "lon": 126.981,
	 "category": "restaurant", "city_id": 1}
]`

func testConfig(t *testing.T, driver string) config.Config {
	t.Helper()
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "places.json")
	require.NoError(t, os.WriteFile(seedPath, []byte(seed), 0o600))

	return config.Config{
		CatalogDriver: driver,
		DBPath:        filepath.Join(dir, "catalog.db"),
		SeedPath:      seedPath,
		SeedOnStart:   true,
		CacheBackend:  "memory",
		CacheTTL:      time.Minute,
	}
}

func TestOpenCatalogDrivers(t *testing.T) {
	for _, driver := range []string{config.DriverSqlite, config.DriverMemory} {
		t.Run(driver, func(t *testing.T) {
			c, err := OpenCatalog(testConfig(t, driver))
			require.NoError(t, err)
			defer c.Close()

			places, err := c.ListPlaces(context.Background(), 1, 10)
			require.NoError(t, err)
			require.Len(t, places, 2)
			assert.Equal(t, 1, places[0].PlaceID)
		})
	}
}

func TestOpenCacheBackends(t *testing.T) {
	cfg := testConfig(t, config.DriverSqlite)
	catalog, err := OpenCatalog(cfg)
	require.NoError(t, err)
	defer catalog.Close()

	cfg.CacheBackend = "db"
	tc, closeFn, err := OpenCache(context.Background(), cfg, catalog)
	require.NoError(t, err)
	assert.IsType(t, &cache.SqliteTripCache{}, tc)
	assert.NoError(t, closeFn())

	cfg.CacheBackend = "none"
	tc, _, err = OpenCache(context.Background(), cfg, catalog)
	require.NoError(t, err)
	assert.Nil(t, tc)

	mr := miniredis.RunT(t)
	cfg.CacheBackend = "redis"
	cfg.RedisURL = "redis://" + mr.Addr()
	tc, closeFn, err = OpenCache(context.Background(), cfg, catalog)
	require.NoError(t, err)
	assert.IsType(t, &cache.RedisTripCache{}, tc)
	assert.NoError(t, closeFn())
}
