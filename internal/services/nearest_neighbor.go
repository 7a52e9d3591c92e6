package services

import (
	"math"
	"trip-course-service/internal/domain"
)

type placeSet map[int]struct{}

func newPlaceSet(ids ...int) placeSet {
	s := make(placeSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s placeSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s placeSet) add(id int) { s[id] = struct{}{} }

// Pick the unused pool member closest to from.
//
// The pool is expected in score order, so on equal distance the
// higher-ranked place wins. When from itself has no usable coordinates
// the first unused member with coordinates is returned.
// Members without coordinates are never picked.
func nearestUnused(from domain.Coordinates, pool []domain.ScoredPlace, used placeSet) (domain.ScoredPlace, bool) {
	var (
		best     domain.ScoredPlace
		found    bool
		bestDist = math.Inf(1)
	)

	for _, p := range pool {
		if used.has(p.PlaceID) || !p.Location.Valid() {
			continue
		}
		if !from.Valid() {
			return p, true
		}
		// Strict comparison keeps the earlier (higher scored) place on ties.
		if d := from.DistanceKm(p.Location); !found || d < bestDist {
			best, bestDist, found = p, d, true
		}
	}

	return best, found
}

// Pick the place closest to from, ignoring usage. Used for replacement lookups
// where the catalog already excluded ineligible ids.
func nearestPlace(from domain.Coordinates, pool []domain.Place) (domain.Place, bool) {
	if len(pool) == 0 {
		return domain.Place{}, false
	}
	if !from.Valid() {
		return pool[0], true
	}

	best := pool[0]
	bestDist := from.DistanceKm(best.Location)
	for _, p := range pool[1:] {
		if d := from.DistanceKm(p.Location); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}
