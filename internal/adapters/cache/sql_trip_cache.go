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

// SQLTripCache is the Postgres variant of SqliteTripCache.
type SQLTripCache struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSQLTripCache(db *sql.DB) *SQLTripCache {
	return &SQLTripCache{DB: db, now: time.Now}
}

func (s *SQLTripCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("trip cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get trip cache: key must not be empty")
	}

	q := `
	SELECT payload
	FROM course_cache
	WHERE cache_key = $1
		AND expires_at > $2;
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key, s.now().UnixMilli()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get trip cache: query course_cache table: %w", err)
	}

	return payload, true, nil
}

func (s *SQLTripCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "cache.sql.Set")(&err)

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

	if _, err := tx.ExecContext(ctx, `DELETE FROM course_cache WHERE expires_at <= $1;`, now.UnixMilli()); err != nil {
		return fmt.Errorf("insert trip cache: prune expired: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO course_cache (cache_key, payload, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		expires_at = EXCLUDED.expires_at;
	`, key, value, now.Add(ttl).UnixMilli())
	if err != nil {
		return fmt.Errorf("insert trip cache key=%q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert trip cache commit: %w", err)
	}

	return nil
}
