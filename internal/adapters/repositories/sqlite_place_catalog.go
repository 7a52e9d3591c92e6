package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
)

// SQLite-backed implementation of the PlaceCatalog port.
type SqlitePlaceCatalog struct{ DB *sql.DB }

func NewSqlitePlaceCatalog(db *sql.DB) *SqlitePlaceCatalog {
	return &SqlitePlaceCatalog{DB: db}
}

// Return places matching the request cities and categories, plus must-visit ids.
func (s *SqlitePlaceCatalog) FindCandidates(
	ctx context.Context,
	q ports.CandidateQuery,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sqlite.FindCandidates")(&err)

	var (
		conds []string
		args  []any
	)
	if len(q.CityIDs) > 0 && len(q.Categories) > 0 {
		conds = append(conds, fmt.Sprintf(
			"(city_id IN (%s) AND category IN (%s))",
			placeholders(len(q.CityIDs)), placeholders(len(q.Categories)),
		))
		args = appendInts(args, q.CityIDs)
		args = appendStrings(args, q.Categories)
	}
	if ids := uniqueIDs(q.MustVisitIDs); len(ids) > 0 {
		conds = append(conds, fmt.Sprintf("place_id IN (%s)", placeholders(len(ids))))
		args = appendInts(args, ids)
	}
	if len(conds) == 0 {
		return []domain.Place{}, nil
	}

	query := catalogSelect + "WHERE " + strings.Join(conds, " OR ") + "\nORDER BY place_id;"
	return s.query(ctx, "find candidates", query, args...)
}

// Return alternatives with usable coordinates, best rated first.
func (s *SqlitePlaceCatalog) FindAlternatives(
	ctx context.Context,
	q ports.AlternativeQuery,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sqlite.FindAlternatives")(&err)

	if len(q.Categories) == 0 {
		return []domain.Place{}, nil
	}

	conds := []string{
		"city_id = ?",
		fmt.Sprintf("category IN (%s)", placeholders(len(q.Categories))),
		validCoordinatesClause,
	}
	args := []any{q.CityID}
	args = appendStrings(args, q.Categories)

	if ids := uniqueIDs(q.ExcludeIDs); len(ids) > 0 {
		conds = append(conds, fmt.Sprintf("place_id NOT IN (%s)", placeholders(len(ids))))
		args = appendInts(args, ids)
	}

	query := catalogSelect + "WHERE " + strings.Join(conds, " AND ") +
		"\nORDER BY rating DESC, place_id\nLIMIT ?;"
	args = append(args, limitOrDefault(q.Limit))

	return s.query(ctx, "find alternatives", query, args...)
}

// Return the places with the given ids; unknown ids are absent from the map.
func (s *SqlitePlaceCatalog) GetPlaces(ctx context.Context, ids []int) (_ map[int]domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sqlite.GetPlaces")(&err)

	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return map[int]domain.Place{}, nil
	}

	query := catalogSelect + fmt.Sprintf("WHERE place_id IN (%s);", placeholders(len(ids)))
	places, err := s.query(ctx, "get places", query, appendInts(nil, ids)...)
	if err != nil {
		return nil, err
	}
	return indexByID(places), nil
}

// Return up to limit places in a city, best rated first.
func (s *SqlitePlaceCatalog) ListPlaces(ctx context.Context, cityID, limit int) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "catalog.sqlite.ListPlaces")(&err)

	query := catalogSelect + `
	WHERE city_id = ?
	ORDER BY rating DESC, place_id
	LIMIT ?;
	`
	return s.query(ctx, "list places", query, cityID, limitOrDefault(limit))
}

// Run one read on a dedicated pooled connection.
func (s *SqlitePlaceCatalog) query(ctx context.Context, op, query string, args ...any) ([]domain.Place, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite place catalog: DB is nil")
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

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func appendInts(args []any, ids []int) []any {
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

func appendStrings(args []any, items []string) []any {
	for _, it := range items {
		args = append(args, it)
	}
	return args
}

const defaultListLimit = 50

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
