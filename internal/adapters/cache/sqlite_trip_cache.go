package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"trip-course-service/internal/platform/obs"
)

// SqliteTripCache persists generated plans in the catalog database's
// course_cache table, so a single-node deployment survives restarts.
type SqliteTripCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteTripCache(db *sql.DB) *SqliteTripCache {
	return &SqliteTripCache{DB: db, now: time.Now}
}

// Fetch a payload that has not expired yet.
func (s *SqliteTripCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "cache.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("trip cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get trip cache: key must not be empty")
	}

	query := `
	SELECT payload
	FROM course_cache
	WHERE cache_key = ?
		AND expires_at > ?;
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, query, key, s.now().UnixMilli()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get trip cache: query course_cache table: %w", err)
	}

	return payload, true, nil
}

// Store a payload and prune rows that have already expired.
func (s *SqliteTripCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "cache.sqlite.Set")(&err)

	if s.DB == nil {
		return errors.New("trip cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert trip cache: key must not be empty")
	}

	now := s.now()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert trip cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_cache WHERE expires_at <= ?;`, now.UnixMilli()); err != nil {
		return fmt.Errorf("insert trip cache: prune expired: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO course_cache (
		cache_key,
		payload,
		expires_at
	)
	VALUES (?, ?, ?);
	`, key, value, now.Add(ttl).UnixMilli())
	if err != nil {
		return fmt.Errorf("insert trip cache key=%q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert trip cache commit: %w", err)
	}

	return nil
}
