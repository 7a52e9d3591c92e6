package ports

import (
	"context"
	"trip-course-service/internal/domain"
)

// Filter for the candidate set of a planning request.
// A place matches when its city and category are both listed,
// or when its id is in MustVisitIDs regardless of category.
type CandidateQuery struct {
	CityIDs      []int
	Categories   []string
	MustVisitIDs []int
}

// Filter for replacement candidates of a single stop.
type AlternativeQuery struct {
	CityID     int
	Categories []string
	ExcludeIDs []int
	Limit      int
}

// Port: a read-only boundary to the place catalog.
type PlaceCatalog interface {
	// Return places matching the candidate filter, ordered by place id.
	FindCandidates(ctx context.Context, q CandidateQuery) ([]domain.Place, error)
	// Return places with valid coordinates matching the filter, ordered by rating desc then id.
	FindAlternatives(ctx context.Context, q AlternativeQuery) ([]domain.Place, error)
	// Return the places with the given ids, keyed by id. Unknown ids are absent.
	GetPlaces(ctx context.Context, ids []int) (map[int]domain.Place, error)
	// Return up to limit places in a city, ordered by id.
	ListPlaces(ctx context.Context, cityID int, limit int) ([]domain.Place, error)
}
