package services

import (
	"context"
	"fmt"
	"log"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
)

// Maximum rows fetched per replacement tier.
const replacementLimit = 20

// ReplaceStop swaps one stop of a course for a nearby alternative.
//
// Candidates are searched in three tiers: same category, then the keyword
// groups containing it, then every category of the same stop kind. Within
// the first non-empty tier the place nearest to the original stop wins.
// Places already in the course are never offered.
//
// Stops before the replaced one are untouched. The new stop and every later
// stop of that day are re-timed; later stops keep their dwell duration.
// The input option is not modified.
func (p *Planner) ReplaceStop(
	ctx context.Context,
	option domain.CourseOption,
	dayNumber int,
	order int,
) (_ *domain.CourseOption, err error) {
	defer obs.Time(ctx, "planner.ReplaceStop")(&err)

	dayIdx, stopIdx, ok := locateStop(option, dayNumber, order)
	if !ok {
		return nil, fmt.Errorf("replace stop: day %d order %d: %w", dayNumber, order, ErrStopNotFound)
	}

	target := option.Days[dayIdx].Stops[stopIdx]

	exclude := make([]int, 0)
	for _, d := range option.Days {
		for _, s := range d.Stops {
			exclude = append(exclude, s.Place.PlaceID)
		}
	}

	replacement, err := p.findReplacement(ctx, target, exclude)
	if err != nil {
		return nil, fmt.Errorf("replace stop: %w", err)
	}

	log.Printf("replace stop: day=%d order=%d old=%d new=%d", dayNumber, order, target.Place.PlaceID, replacement.PlaceID)

	out := option.Clone()
	retimeFrom(out.Days[dayIdx].Stops, stopIdx, replacement)
	return &out, nil
}

func locateStop(option domain.CourseOption, dayNumber, order int) (int, int, bool) {
	for di, d := range option.Days {
		if d.Day != dayNumber {
			continue
		}
		for si, s := range d.Stops {
			if s.Order == order {
				return di, si, true
			}
		}
	}
	return 0, 0, false
}

func (p *Planner) findReplacement(ctx context.Context, target domain.RouteStop, exclude []int) (domain.Place, error) {
	for tier, categories := range replacementTiers(target) {
		if len(categories) == 0 {
			continue
		}

		found, err := p.catalog.FindAlternatives(ctx, ports.AlternativeQuery{
			CityID:     target.Place.CityID,
			Categories: categories,
			ExcludeIDs: exclude,
			Limit:      replacementLimit,
		})
		if err != nil {
			return domain.Place{}, fmt.Errorf("find alternatives (tier %d): %w", tier+1, err)
		}

		if best, ok := nearestPlace(target.Place.Location, found); ok {
			return best, nil
		}
	}

	return domain.Place{}, ErrNoReplacement
}

// Category lists for the three fallback tiers.
func replacementTiers(target domain.RouteStop) [][]string {
	category := target.Place.Category

	var byKind []string
	switch target.Kind {
	case domain.KindAccommodation:
		byKind = domain.LodgingCategories()
	case domain.KindMeal:
		byKind = domain.DiningCategories()
	default:
		byKind = domain.SpotCategories()
	}

	return [][]string{
		{category},
		domain.SortedCategories(domain.GroupCategoriesFor(category)),
		byKind,
	}
}

// Put place at stops[idx] and shift every later stop.
func retimeFrom(stops []domain.RouteStop, idx int, place domain.Place) {
	old := stops[idx]

	kind := old.Kind
	if kind != domain.KindAccommodation {
		kind = place.Kind()
	}

	arrive := old.ArriveAt
	if idx > 0 {
		arrive = stops[idx-1].DepartAt.Add(travelTime(lastLocation(stops, idx), place.Location))
	}

	stops[idx] = domain.RouteStop{
		Order:    old.Order,
		Place:    place,
		Kind:     kind,
		ArriveAt: arrive,
		DepartAt: arrive.Add(minutes(domain.StayMinutes(place.Category, kind))),
	}

	for i := idx + 1; i < len(stops); i++ {
		dwell := stops[i].DepartAt.Sub(stops[i].ArriveAt)
		a := stops[i-1].DepartAt.Add(travelTime(lastLocation(stops, i), stops[i].Place.Location))
		stops[i].ArriveAt = a
		stops[i].DepartAt = a.Add(dwell)
	}
}

// Last known coordinates before stops[idx].
func lastLocation(stops []domain.RouteStop, idx int) domain.Coordinates {
	for i := idx - 1; i >= 0; i-- {
		if stops[i].Place.Location.Valid() {
			return stops[i].Place.Location
		}
	}
	return domain.NoCoordinates
}
