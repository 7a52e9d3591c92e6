package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
)

// SQLPlaceCatalog reads the catalog from Postgres through the pgx stdlib driver.
type SQLPlaceCatalog struct {
	DB *sql.DB
}

func NewSQLPlaceCatalog(db *sql.DB) *SQLPlaceCatalog {
	return &SQLPlaceCatalog{DB: db}
}

func (s *SQLPlaceCatalog) FindCandidates(
	ctx context.Context,
	q ports.CandidateQuery,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sql.FindCandidates")(&err)

	query := catalogSelect + `
	WHERE (city_id = ANY($1::bigint[]) AND category = ANY($2::text[]))
		OR place_id = ANY($3::bigint[])
	ORDER BY place_id;
	`
	return s.query(ctx, "find candidates", query,
		toInt64s(q.CityIDs), nonNilStrings(q.Categories), toInt64s(uniqueIDs(q.MustVisitIDs)))
}

func (s *SQLPlaceCatalog) FindAlternatives(
	ctx context.Context,
	q ports.AlternativeQuery,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sql.FindAlternatives")(&err)

	if len(q.Categories) == 0 {
		return []domain.Place{}, nil
	}

	query := catalogSelect + `
	WHERE city_id = $1
		AND category = ANY($2::text[])
		AND NOT (place_id = ANY($3::bigint[]))
		AND ` + validCoordinatesClause + `
	ORDER BY rating DESC, place_id
	LIMIT $4;
	`
	return s.query(ctx, "find alternatives", query,
		q.CityID, q.Categories, toInt64s(uniqueIDs(q.ExcludeIDs)), limitOrDefault(q.Limit))
}

func (s *SQLPlaceCatalog) GetPlaces(ctx context.Context, ids []int) (_ map[int]domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sql.GetPlaces")(&err)

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return map[int]domain.Place{}, nil
	}

	query := catalogSelect + `WHERE place_id = ANY($1::bigint[]);`
	places, err := s.query(ctx, "get places", query, toInt64s(ids))
	if err != nil {
		return nil, err
	}
	return indexByID(places), nil
}

func (s *SQLPlaceCatalog) ListPlaces(ctx context.Context, cityID, limit int) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sql.ListPlaces")(&err)

	query := catalogSelect + `
	WHERE city_id = $1
	ORDER BY rating DESC, place_id
	LIMIT $2;
	`
	return s.query(ctx, "list places", query, cityID, limitOrDefault(limit))
}

func (s *SQLPlaceCatalog) query(ctx context.Context, op, query string, args ...any) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("sql place catalog: db is nil")
	}

	conn, err := s.DB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: acquire connection: %w", op, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query places: %w", op, err)
	}

	return scanPlaces(rows, op)
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
