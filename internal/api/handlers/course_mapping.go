package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"
	"trip-course-service/internal/api/dto"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/ports"
)

// Longest trip accepted, in days.
const maxTripDays = 14

// ErrInvalidRequest marks input that passed decoding but is semantically wrong.
var ErrInvalidRequest = errors.New("invalid request")

func toTripRequest(req dto.GenerateCoursesRequest) (domain.TripRequest, error) {
	start, err := time.Parse(dto.DateLayout, req.StartDate)
	if err != nil {
		return domain.TripRequest{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	end, err := time.Parse(dto.DateLayout, req.EndDate)
	if err != nil {
		return domain.TripRequest{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if end.Before(start) {
		return domain.TripRequest{}, fmt.Errorf("%w: end_date is before start_date", ErrInvalidRequest)
	}

	tr := domain.TripRequest{
		CityIDs:      req.Cities,
		StartDate:    start,
		EndDate:      end,
		Companions:   req.Companions,
		Pacing:       domain.ParsePacing(req.Pacing),
		MustVisitIDs: req.MustVisitSpots,
	}
	for _, k := range req.Keywords {
		tr.Keywords = append(tr.Keywords, domain.NormalizeKeyword(k))
	}

	if tr.DurationDays() > maxTripDays {
		return domain.TripRequest{}, fmt.Errorf("%w: trips are limited to %d days", ErrInvalidRequest, maxTripDays)
	}

	return tr, nil
}

// Stable cache key for a planning request. City order is kept because it
// decides the day rotation; keyword and must-visit order do not matter.
func cacheKey(tr domain.TripRequest) string {
	keywords := slices.Clone(tr.Keywords)
	slices.Sort(keywords)
	keywords = slices.Compact(keywords)

	mustVisit := slices.Clone(tr.MustVisitIDs)
	slices.Sort(mustVisit)
	mustVisit = slices.Compact(mustVisit)

	b, _ := json.Marshal(struct {
		Cities    []int    `json:"c"`
		Start     string   `json:"s"`
		End       string   `json:"e"`
		Keywords  []string `json:"k"`
		Pacing    string   `json:"p"`
		MustVisit []int    `json:"m"`
	}{
		Cities:    tr.CityIDs,
		Start:     tr.StartDate.Format(dto.DateLayout),
		End:       tr.EndDate.Format(dto.DateLayout),
		Keywords:  keywords,
		Pacing:    string(tr.Pacing),
		MustVisit: mustVisit,
	})

	sum := sha256.Sum256(b)
	return "generate:" + hex.EncodeToString(sum[:])
}

// Rebuild a domain course from its wire form. Stops are rehydrated from the
// catalog so coordinates and city are known; places the catalog no longer
// has keep their wire fields and no location.
func courseFromDTO(ctx context.Context, catalog ports.PlaceCatalog, c dto.CourseOption) (domain.CourseOption, error) {
	var ids []int
	for _, d := range c.Days {
		for _, s := range d.Route {
			ids = append(ids, s.ContentID)
		}
	}

	known, err := catalog.GetPlaces(ctx, ids)
	if err != nil {
		return domain.CourseOption{}, fmt.Errorf("rehydrate course: %w", err)
	}

	out := domain.CourseOption{
		ThemeTitle: c.ThemeTitle,
		Strategy:   domain.Strategy(c.Strategy),
		Days:       make([]domain.DailyRoute, 0, len(c.Days)),
	}

	for _, d := range c.Days {
		date, err := time.Parse(dto.DateLayout, d.Date)
		if err != nil {
			return domain.CourseOption{}, fmt.Errorf("%w: day %d date must be YYYY-MM-DD", ErrInvalidRequest, d.Day)
		}

		day := domain.DailyRoute{Day: d.Day, Date: date, Stops: make([]domain.RouteStop, 0, len(d.Route))}
		for _, s := range d.Route {
			arrive, err := onDate(date, s.ArrivalTime)
			if err != nil {
				return domain.CourseOption{}, fmt.Errorf("%w: day %d order %d arrival_time: %v", ErrInvalidRequest, d.Day, s.Order, err)
			}
			depart, err := onDate(date, s.DepartureTime)
			if err != nil {
				return domain.CourseOption{}, fmt.Errorf("%w: day %d order %d departure_time: %v", ErrInvalidRequest, d.Day, s.Order, err)
			}

			place, ok := known[s.ContentID]
			if !ok {
				place = domain.Place{
					PlaceID:  s.ContentID,
					Name:     s.Name,
					Address:  s.Address,
					Location: domain.NoCoordinates,
					Category: s.Category,
					Rating:   domain.DefaultRating,
				}
			}

			kind := domain.StopKind(s.Type)
			if kind == "" {
				kind = place.Kind()
			}

			day.Stops = append(day.Stops, domain.RouteStop{
				Order:    s.Order,
				Place:    place,
				Kind:     kind,
				ArriveAt: arrive,
				DepartAt: depart,
			})
		}
		out.Days = append(out.Days, day)
	}

	return out, nil
}

func onDate(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(dto.ClockLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
