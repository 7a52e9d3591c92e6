package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
)

// QueryCandidates resolves a trip request into the candidate places for planning.
//
// Keywords are expanded through the static category table; lodging and dining
// categories are always included so nights and meals can be scheduled.
// Must-visit places bypass the category filter and are kept even without
// coordinates. The result is ordered by place id.
func QueryCandidates(
	ctx context.Context,
	catalog ports.PlaceCatalog,
	req domain.TripRequest,
) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "planner.QueryCandidates")(&err)

	if catalog == nil {
		return nil, errors.New("query candidates: catalog is nil")
	}

	categories := domain.CategoriesForKeywords(req.Keywords)
	for _, c := range domain.LodgingCategories() {
		categories[c] = struct{}{}
	}
	for _, c := range domain.DiningCategories() {
		categories[c] = struct{}{}
	}

	places, err := catalog.FindCandidates(ctx, ports.CandidateQuery{
		CityIDs:      req.CityIDs,
		Categories:   domain.SortedCategories(categories),
		MustVisitIDs: req.MustVisitIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("query candidates: find candidates: %w", err)
	}

	mustVisit := newPlaceSet(req.MustVisitIDs...)
	seen := newPlaceSet()
	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if seen.has(p.PlaceID) {
			continue
		}
		if !p.Location.Valid() && !mustVisit.has(p.PlaceID) {
			continue
		}
		seen.add(p.PlaceID)
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b domain.Place) int { return a.PlaceID - b.PlaceID })

	log.Printf("query candidates: cities=%v categories=%d rows=%d kept=%d", req.CityIDs, len(categories), len(places), len(out))

	if len(out) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	return out, nil
}
