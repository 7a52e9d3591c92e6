package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite catalog schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, sqliteSchema)
}

// Initialize the Postgres catalog schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, postgresSchema)
}

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS places (
		place_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat REAL,
		lon REAL,
		category TEXT NOT NULL,
		city_id INTEGER NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS reviews (
		review_id INTEGER PRIMARY KEY AUTOINCREMENT,
		place_id INTEGER NOT NULL REFERENCES places(place_id),
		rating REAL NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS concentration_rates (
		place_id INTEGER NOT NULL REFERENCES places(place_id),
		base_date TEXT NOT NULL,
		rate REAL NOT NULL,
		PRIMARY KEY (place_id, base_date)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS course_cache (
		cache_key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	);
	`,
	`CREATE INDEX IF NOT EXISTS idx_places_city_category ON places(city_id, category);`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_place ON reviews(place_id);`,
}

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS places (
		place_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		category TEXT NOT NULL,
		city_id INTEGER NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS reviews (
		review_id BIGSERIAL PRIMARY KEY,
		place_id INTEGER NOT NULL REFERENCES places(place_id),
		rating DOUBLE PRECISION NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS concentration_rates (
		place_id INTEGER NOT NULL REFERENCES places(place_id),
		base_date DATE NOT NULL,
		rate DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (place_id, base_date)
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS course_cache (
		cache_key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		expires_at BIGINT NOT NULL
	);
	`,
	`CREATE INDEX IF NOT EXISTS idx_places_city_category ON places(city_id, category);`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_place ON reviews(place_id);`,
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the SQLite catalog from a JSON seed file.
// Existing rows for the seeded place ids are replaced.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	return seedFromJSON(db, jsonPath, sqliteSeedStatements)
}

// Populate the Postgres catalog from a JSON seed file.
func SeedPostgresFromJSON(db *sql.DB, jsonPath string) error {
	return seedFromJSON(db, jsonPath, postgresSeedStatements)
}

type seedStatements struct {
	upsertPlace       string
	deleteReviews     string
	insertReview      string
	upsertConcentrate string
}

var sqliteSeedStatements = seedStatements{
	upsertPlace: `
	INSERT OR REPLACE INTO places (place_id, name, address, lat, lon, category, city_id)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`,
	deleteReviews: `DELETE FROM reviews WHERE place_id = ?;`,
	insertReview:  `INSERT INTO reviews (place_id, rating) VALUES (?, ?);`,
	upsertConcentrate: `
	INSERT OR REPLACE INTO concentration_rates (place_id, base_date, rate)
	VALUES (?, ?, ?);
	`,
}

var postgresSeedStatements = seedStatements{
	upsertPlace: `
	INSERT INTO places (place_id, name, address, lat, lon, category, city_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (place_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		category = EXCLUDED.category,
		city_id = EXCLUDED.city_id;
	`,
	deleteReviews: `DELETE FROM reviews WHERE place_id = $1;`,
	insertReview:  `INSERT INTO reviews (place_id, rating) VALUES ($1, $2);`,
	upsertConcentrate: `
	INSERT INTO concentration_rates (place_id, base_date, rate)
	VALUES ($1, $2, $3)
	ON CONFLICT (place_id, base_date) DO UPDATE SET rate = EXCLUDED.rate;
	`,
}

func seedFromJSON(db *sql.DB, jsonPath string, q seedStatements) error {
	if db == nil {
		return errors.New("seed places: DB is nil")
	}

	seeds, err := LoadPlaceSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	placeStmt, err := tx.Prepare(q.upsertPlace)
	if err != nil {
		return fmt.Errorf("seed places: prepare place upsert: %w", err)
	}
	defer placeStmt.Close()

	reviewStmt, err := tx.Prepare(q.insertReview)
	if err != nil {
		return fmt.Errorf("seed places: prepare review insert: %w", err)
	}
	defer reviewStmt.Close()

	rateStmt, err := tx.Prepare(q.upsertConcentrate)
	if err != nil {
		return fmt.Errorf("seed places: prepare concentration upsert: %w", err)
	}
	defer rateStmt.Close()

	for _, s := range seeds {
		var lat, lon sql.NullFloat64
		if s.Lat != nil && s.Lon != nil {
			lat = sql.NullFloat64{Float64: *s.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: *s.Lon, Valid: true}
		}

		if _, err := placeStmt.Exec(s.PlaceID, s.Name, s.Address, lat, lon, s.Category, s.CityID); err != nil {
			return fmt.Errorf("seed places: upsert place_id=%d: %w", s.PlaceID, err)
		}

		if _, err := tx.Exec(q.deleteReviews, s.PlaceID); err != nil {
			return fmt.Errorf("seed places: clear reviews place_id=%d: %w", s.PlaceID, err)
		}
		for _, r := range s.Ratings {
			if _, err := reviewStmt.Exec(s.PlaceID, r); err != nil {
				return fmt.Errorf("seed places: insert review place_id=%d: %w", s.PlaceID, err)
			}
		}

		for _, c := range s.Concentrations {
			if _, err := rateStmt.Exec(s.PlaceID, c.Date, c.Rate); err != nil {
				return fmt.Errorf("seed places: upsert concentration place_id=%d date=%s: %w", s.PlaceID, c.Date, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
