package repositories

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"trip-course-service/internal/domain"
)

// ConcentrationSeed is one dated crowd-density sample.
type ConcentrationSeed struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// PlaceSeed is the JSON shape of one catalog entry in the seed file.
// Lat/Lon may be null for places without a known location.
type PlaceSeed struct {
	PlaceID        int                 `json:"place_id"`
	Name           string              `json:"name"`
	Address        string              `json:"address"`
	Lat            *float64            `json:"lat"`
	Lon            *float64            `json:"lon"`
	Category       string              `json:"category"`
	CityID         int                 `json:"city_id"`
	Ratings        []float64           `json:"ratings"`
	Concentrations []ConcentrationSeed `json:"concentration_rates"`
}

// Read and validate a seed file.
func LoadPlaceSeeds(jsonPath string) ([]PlaceSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load place seeds: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load place seeds: parse json: %w", err)
	}

	for i := range data {
		item := &data[i]
		if item.PlaceID <= 0 {
			return nil, fmt.Errorf("load place seeds: invalid place_id at index %d: %d", i+1, item.PlaceID)
		}
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, fmt.Errorf("load place seeds: place_id=%d: name cannot be empty", item.PlaceID)
		}
		item.Category = strings.TrimSpace(item.Category)
		if item.Category == "" {
			return nil, fmt.Errorf("load place seeds: place_id=%d: category cannot be empty", item.PlaceID)
		}
		for _, r := range item.Ratings {
			if r < 0 || r > 5 {
				return nil, fmt.Errorf("load place seeds: place_id=%d: rating %v out of range", item.PlaceID, r)
			}
		}
	}

	return data, nil
}

// ToPlace applies the same derivations the SQL catalogs perform at query time.
func (s PlaceSeed) ToPlace() domain.Place {
	p := domain.Place{
		PlaceID:  s.PlaceID,
		Name:     s.Name,
		Address:  s.Address,
		Location: domain.NoCoordinates,
		Category: s.Category,
		CityID:   s.CityID,
		Rating:   domain.DefaultRating,
	}

	if s.Lat != nil && s.Lon != nil {
		p.Location = domain.Coordinates{Lat: *s.Lat, Lon: *s.Lon}
	}

	if len(s.Ratings) > 0 {
		sum := 0.0
		for _, r := range s.Ratings {
			sum += r
		}
		p.Rating = sum / float64(len(s.Ratings))
	}

	latest := ""
	for _, c := range s.Concentrations {
		if c.Date >= latest && !math.IsNaN(c.Rate) {
			latest = c.Date
			rate := c.Rate
			p.Concentration = &rate
		}
	}

	return p
}
