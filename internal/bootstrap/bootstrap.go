// Package bootstrap builds the concrete adapters selected by configuration.
// Shared by the server and dbtool so both talk to the same catalog.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"trip-course-service/internal/adapters/cache"
	"trip-course-service/internal/adapters/repositories"
	"trip-course-service/internal/config"
	"trip-course-service/internal/platform/db"
	"trip-course-service/internal/ports"
)

// Catalog is an opened place catalog and, for SQL drivers, its database.
type Catalog struct {
	ports.PlaceCatalog
	DB     *sql.DB
	Driver string
}

func (c *Catalog) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// OpenDB opens the SQL database for the configured driver without touching the schema.
func OpenDB(cfg config.Config) (*sql.DB, error) {
	switch cfg.CatalogDriver {
	case config.DriverSqlite:
		return db.OpenSqlite(cfg.DBPath)
	case config.DriverPostgres:
		return db.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("open db: driver %q has no database", cfg.CatalogDriver)
	}
}

// InitSchema creates catalog tables for the configured driver.
func InitSchema(cfg config.Config, database *sql.DB) error {
	if cfg.CatalogDriver == config.DriverPostgres {
		return repositories.InitPostgresSchema(database)
	}
	return repositories.InitSchema(database)
}

// Seed loads the JSON seed file into the configured database.
func Seed(cfg config.Config, database *sql.DB, seedPath string) error {
	if cfg.CatalogDriver == config.DriverPostgres {
		return repositories.SeedPostgresFromJSON(database, seedPath)
	}
	return repositories.SeedFromJSON(database, seedPath)
}

// OpenCatalog opens the catalog named by CATALOG_DRIVER. SQL catalogs get
// their schema ensured and, when SeedOnStart is set, the seed file applied.
func OpenCatalog(cfg config.Config) (*Catalog, error) {
	if cfg.CatalogDriver == config.DriverMemory {
		mem, err := repositories.NewMemoryPlaceCatalogFromJSON(cfg.SeedPath)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		return &Catalog{PlaceCatalog: mem, Driver: cfg.CatalogDriver}, nil
	}

	database, err := OpenDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	if err := InitSchema(cfg, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	if cfg.SeedOnStart {
		if err := Seed(cfg, database, cfg.SeedPath); err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		log.Printf("catalog seeded driver=%s seed=%s", cfg.CatalogDriver, cfg.SeedPath)
	}

	c := &Catalog{DB: database, Driver: cfg.CatalogDriver}
	if cfg.CatalogDriver == config.DriverPostgres {
		c.PlaceCatalog = repositories.NewSQLPlaceCatalog(database)
	} else {
		c.PlaceCatalog = repositories.NewSqlitePlaceCatalog(database)
	}
	return c, nil
}

// OpenCache returns the response cache named by CACHE_BACKEND, or nil for "none".
// The returned close func is always safe to call.
func OpenCache(ctx context.Context, cfg config.Config, catalog *Catalog) (ports.TripCache, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CacheBackend {
	case "none":
		return nil, noop, nil
	case "memory":
		return cache.NewMemoryTripCache(cfg.CacheTTL), noop, nil
	case "redis":
		rc, err := cache.NewRedisTripCacheFromURL(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, fmt.Errorf("open cache: %w", err)
		}
		return rc, rc.Close, nil
	case "db":
		if catalog == nil || catalog.DB == nil {
			return nil, noop, fmt.Errorf("open cache: db backend needs a SQL catalog")
		}
		if catalog.Driver == config.DriverPostgres {
			return cache.NewSQLTripCache(catalog.DB), noop, nil
		}
		return cache.NewSqliteTripCache(catalog.DB), noop, nil
	default:
		return nil, noop, fmt.Errorf("open cache: unknown backend %q", cfg.CacheBackend)
	}
}
