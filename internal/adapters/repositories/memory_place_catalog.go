package repositories

import (
	"context"
	"fmt"
	"slices"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/ports"
)

// MemoryPlaceCatalog serves a fixed set of places from memory.
// Used for local runs from a seed file and as a test double.
type MemoryPlaceCatalog struct {
	places []domain.Place
}

func NewMemoryPlaceCatalog(places []domain.Place) *MemoryPlaceCatalog {
	cp := append([]domain.Place(nil), places...)
	slices.SortFunc(cp, func(a, b domain.Place) int { return a.PlaceID - b.PlaceID })
	return &MemoryPlaceCatalog{places: cp}
}

// Build a catalog from a JSON seed file.
func NewMemoryPlaceCatalogFromJSON(jsonPath string) (*MemoryPlaceCatalog, error) {
	seeds, err := LoadPlaceSeeds(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("memory place catalog: %w", err)
	}

	places := make([]domain.Place, 0, len(seeds))
	for _, s := range seeds {
		places = append(places, s.ToPlace())
	}
	return NewMemoryPlaceCatalog(places), nil
}

func (m *MemoryPlaceCatalog) FindCandidates(_ context.Context, q ports.CandidateQuery) ([]domain.Place, error) {
	cities := toIDSet(q.CityIDs)
	mustVisit := toIDSet(q.MustVisitIDs)
	categories := make(map[string]struct{}, len(q.Categories))
	for _, c := range q.Categories {
		categories[c] = struct{}{}
	}

	out := []domain.Place{}
	for _, p := range m.places {
		_, inCity := cities[p.CityID]
		_, inCategory := categories[p.Category]
		_, must := mustVisit[p.PlaceID]
		if (inCity && inCategory) || must {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemoryPlaceCatalog) FindAlternatives(_ context.Context, q ports.AlternativeQuery) ([]domain.Place, error) {
	excluded := toIDSet(q.ExcludeIDs)
	categories := make(map[string]struct{}, len(q.Categories))
	for _, c := range q.Categories {
		categories[c] = struct{}{}
	}

	out := []domain.Place{}
	for _, p := range m.places {
		if p.CityID != q.CityID || !p.Location.Valid() {
			continue
		}
		if _, ok := categories[p.Category]; !ok {
			continue
		}
		if _, ok := excluded[p.PlaceID]; ok {
			continue
		}
		out = append(out, p)
	}

	sortByRating(out)
	return truncate(out, limitOrDefault(q.Limit)), nil
}

func (m *MemoryPlaceCatalog) GetPlaces(_ context.Context, ids []int) (map[int]domain.Place, error) {
	want := toIDSet(ids)
	out := make(map[int]domain.Place, len(want))
	for _, p := range m.places {
		if _, ok := want[p.PlaceID]; ok {
			out[p.PlaceID] = p
		}
	}
	return out, nil
}

func (m *MemoryPlaceCatalog) ListPlaces(_ context.Context, cityID, limit int) ([]domain.Place, error) {
	out := []domain.Place{}
	for _, p := range m.places {
		if p.CityID == cityID {
			out = append(out, p)
		}
	}

	sortByRating(out)
	return truncate(out, limitOrDefault(limit)), nil
}

func sortByRating(places []domain.Place) {
	slices.SortStableFunc(places, func(a, b domain.Place) int {
		if a.Rating > b.Rating {
			return -1
		}
		if a.Rating < b.Rating {
			return 1
		}
		return a.PlaceID - b.PlaceID
	})
}

func truncate(places []domain.Place, n int) []domain.Place {
	if len(places) > n {
		return places[:n]
	}
	return places
}

func toIDSet(ids []int) map[int]struct{} {
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
