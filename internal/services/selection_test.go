package services

import (
	"math"
	"testing"
	"time"
	"trip-course-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(places ...domain.Place) []domain.ScoredPlace {
	out := make([]domain.ScoredPlace, 0, len(places))
	for _, p := range places {
		out = append(out, domain.ScoredPlace{Place: p})
	}
	return out
}

func TestNearestUnusedPicksClosest(t *testing.T) {
	pool := scored(
		testPlace(1, "park", 1.0, 1.0, 5),
		testPlace(2, "park", 0.5, 0.5, 5),
		testPlace(3, "park", 0.1, 0.1, 5),
		testPlace(4, "park", 0.2, 0.0, 5),
	)

	got, ok := nearestUnused(domain.Coordinates{Lat: 0, Lon: 0}, pool, newPlaceSet())
	require.True(t, ok)
	assert.Equal(t, 3, got.PlaceID)

	got, ok = nearestUnused(domain.Coordinates{Lat: 0, Lon: 0}, pool, newPlaceSet(3))
	require.True(t, ok)
	assert.Equal(t, 4, got.PlaceID, "used places are skipped")
}

func TestNearestUnusedTieFavorsEarlierPoolEntry(t *testing.T) {
	pool := scored(
		testPlace(9, "park", 0.0, 1.0, 5),
		testPlace(1, "park", 0.0, -1.0, 5),
	)

	got, ok := nearestUnused(domain.Coordinates{Lat: 0, Lon: 0}, pool, newPlaceSet())
	require.True(t, ok)
	assert.Equal(t, 9, got.PlaceID)
}

func TestNearestUnusedSkipsMissingCoordinates(t *testing.T) {
	noCoords := testPlace(1, "park", 0, 0, 5)
	noCoords.Location = domain.NoCoordinates
	pool := scored(noCoords, testPlace(2, "park", 10, 10, 5))

	got, ok := nearestUnused(domain.Coordinates{Lat: 0, Lon: 0}, pool, newPlaceSet())
	require.True(t, ok)
	assert.Equal(t, 2, got.PlaceID)

	got, ok = nearestUnused(domain.NoCoordinates, pool, newPlaceSet())
	require.True(t, ok)
	assert.Equal(t, 2, got.PlaceID, "unknown origin takes the first locatable member")

	_, ok = nearestUnused(domain.Coordinates{}, pool, newPlaceSet(2))
	assert.False(t, ok)
}

func TestTravelTimeMonotonic(t *testing.T) {
	assert.Zero(t, travelMinutes(0))
	assert.InDelta(t, 60.0, travelMinutes(40), 1e-9)

	prev := -1.0
	for km := 0.0; km < 100; km += 7.5 {
		m := travelMinutes(km)
		assert.Greater(t, m, prev)
		prev = m
	}

	assert.Zero(t, travelTime(domain.NoCoordinates, domain.Coordinates{Lat: 1, Lon: 1}))
	a := domain.Coordinates{Lat: 37.5, Lon: 127}
	assert.Zero(t, travelTime(a, a))
}

func TestOpenMealWindow(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2026, 5, 1, h, m, 0, 0, time.UTC) }

	w, ok := openMealWindow(at(12, 0), map[string]bool{})
	assert.True(t, ok)
	assert.Equal(t, "lunch", w)

	_, ok = openMealWindow(at(13, 30), map[string]bool{})
	assert.False(t, ok, "window end is exclusive")

	_, ok = openMealWindow(at(12, 45), map[string]bool{"lunch": true})
	assert.False(t, ok)

	w, ok = openMealWindow(at(19, 29), map[string]bool{"lunch": true})
	assert.True(t, ok)
	assert.Equal(t, "dinner", w)
}

func TestScorePlacesDeterministic(t *testing.T) {
	low := 10.0
	candidates := []domain.Place{
		testPlace(3, "park", 0, 0, 4),
		testPlace(1, "park", 0, 0, 4),
		testPlace(2, "museum", 0, 0, 5),
	}
	candidates[2].Concentration = &low
	userCats := domain.CategoriesForKeywords([]string{"nature"})

	first := ScorePlaces(candidates, userCats, domain.StrategyDefault)
	second := ScorePlaces(candidates, userCats, domain.StrategyDefault)
	assert.Equal(t, first, second)

	// park: 80*.5 + 50*.2 + 100*.3 = 80; museum: 100*.5 + 90*.2 + 50*.3 = 83
	require.Len(t, first, 3)
	assert.Equal(t, 2, first[0].PlaceID)
	assert.InDelta(t, 83.0, first[0].Score, 1e-9)
	assert.Equal(t, []int{1, 3}, []int{first[1].PlaceID, first[2].PlaceID}, "ties break on place id")
	assert.InDelta(t, 80.0, first[1].Score, 1e-9)

	gems := ScorePlaces(candidates, userCats, domain.StrategyHiddenGem)
	// museum: 100*.3 + 90*.4 + 50*.3 = 81
	assert.InDelta(t, 81.0, gems[0].Score, 1e-9)
	assert.Equal(t, domain.StrategyHiddenGem, gems[0].Strategy)
	assert.False(t, math.IsNaN(gems[2].Score))
}
