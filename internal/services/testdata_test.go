package services

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trip-course-service/internal/adapters/repositories"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/ports"
)

var tripStart = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func testPlace(id int, category string, lat, lon, rating float64) domain.Place {
	return domain.Place{
		PlaceID:  id,
		Name:     fmt.Sprintf("place-%d", id),
		Address:  fmt.Sprintf("%d Test Rd", id),
		Location: domain.Coordinates{Lat: lat, Lon: lon},
		Category: category,
		CityID:   1,
		Rating:   rating,
	}
}

// A compact single-city catalog: five historic sites, two restaurants,
// one cafe, one hotel, one park and one off-keyword museum.
func cityCatalogPlaces() []domain.Place {
	return []domain.Place{
		testPlace(101, "historic_site", 37.500, 127.000, 4.9),
		testPlace(102, "historic_site", 37.501, 127.000, 4.8),
		testPlace(103, "historic_site", 37.502, 127.000, 4.7),
		testPlace(104, "historic_site", 37.503, 127.000, 4.6),
		testPlace(105, "historic_site", 37.504, 127.000, 4.5),
		testPlace(201, "restaurant", 37.5015, 127.001, 4.2),
		testPlace(202, "korean", 37.5035, 127.001, 4.0),
		testPlace(301, "cafe", 37.502, 127.002, 4.1),
		testPlace(401, "tourist_hotel", 37.505, 127.003, 4.3),
		testPlace(501, "park", 37.506, 127.000, 3.9),
		testPlace(601, "museum", 37.510, 127.010, 2.5),
	}
}

func newTestPlanner(places []domain.Place) *Planner {
	return NewPlanner(repositories.NewMemoryPlaceCatalog(places))
}

func dayRequest(days int, pacing domain.Pacing, keywords ...string) domain.TripRequest {
	return domain.TripRequest{
		CityIDs:   []int{1},
		StartDate: tripStart,
		EndDate:   tripStart.AddDate(0, 0, days-1),
		Keywords:  keywords,
		Pacing:    pacing,
	}
}

type failingCatalog struct{ err error }

func (f failingCatalog) FindCandidates(context.Context, ports.CandidateQuery) ([]domain.Place, error) {
	return nil, f.err
}

func (f failingCatalog) FindAlternatives(context.Context, ports.AlternativeQuery) ([]domain.Place, error) {
	return nil, f.err
}

func (f failingCatalog) GetPlaces(context.Context, []int) (map[int]domain.Place, error) {
	return nil, f.err
}

func (f failingCatalog) ListPlaces(context.Context, int, int) ([]domain.Place, error) {
	return nil, f.err
}

var errCatalogDown = errors.New("catalog down")
