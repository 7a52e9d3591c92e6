package services

import (
	"context"
	"testing"
	"time"
	"trip-course-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeByID(t *testing.T, places []domain.Place, id int) domain.Place {
	t.Helper()
	for _, p := range places {
		if p.PlaceID == id {
			return p
		}
	}
	t.Fatalf("place %d not in fixture", id)
	return domain.Place{}
}

// Four stops: historic site, museum, lunch, park.
func fourStopOption(t *testing.T, places []domain.Place) domain.CourseOption {
	t.Helper()
	at := func(h, m int) time.Time { return time.Date(2026, 5, 1, h, m, 0, 0, time.UTC) }

	return domain.CourseOption{
		ThemeTitle: "Popular course: top pick",
		Strategy:   domain.StrategyDefault,
		Days: []domain.DailyRoute{{
			Day:  1,
			Date: tripStart,
			Stops: []domain.RouteStop{
				{Order: 1, Place: placeByID(t, places, 101), Kind: domain.KindSpot, ArriveAt: at(9, 0), DepartAt: at(10, 30)},
				{Order: 2, Place: placeByID(t, places, 601), Kind: domain.KindSpot, ArriveAt: at(10, 32), DepartAt: at(12, 32)},
				{Order: 3, Place: placeByID(t, places, 201), Kind: domain.KindMeal, ArriveAt: at(12, 35), DepartAt: at(13, 45)},
				{Order: 4, Place: placeByID(t, places, 501), Kind: domain.KindSpot, ArriveAt: at(13, 50), DepartAt: at(15, 20)},
			},
		}},
	}
}

func TestReplaceStopFallsBackToKeywordGroup(t *testing.T) {
	places := cityCatalogPlaces()
	planner := newTestPlanner(places)
	option := fourStopOption(t, places)
	before := option.Clone()

	got, err := planner.ReplaceStop(context.Background(), option, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, before, option, "input option must not change")

	stops := got.Days[0].Stops
	require.Len(t, stops, 4)

	assert.Equal(t, before.Days[0].Stops[0], stops[0], "stops before the replacement are untouched")

	replaced := stops[1]
	assert.Equal(t, 2, replaced.Order)
	assert.Equal(t, 105, replaced.Place.PlaceID, "nearest history-group place to the museum")
	assert.Contains(t, domain.GroupCategoriesFor("museum"), replaced.Place.Category)
	assert.Equal(t, stops[0].DepartAt.Add(travelTime(stops[0].Place.Location, replaced.Place.Location)), replaced.ArriveAt)
	assert.Equal(t, 90, replaced.DurationMinutes())

	for i := 2; i < 4; i++ {
		assert.Equal(t, before.Days[0].Stops[i].DurationMinutes(), stops[i].DurationMinutes(), "order %d keeps its dwell", i+1)
		assert.Equal(t, before.Days[0].Stops[i].Place.PlaceID, stops[i].Place.PlaceID)
		assert.False(t, stops[i].ArriveAt.Before(stops[i-1].DepartAt))
	}
}

func TestReplaceStopPrefersSameCategory(t *testing.T) {
	places := append(cityCatalogPlaces(), testPlace(602, "museum", 37.490, 127.000, 3.0))
	planner := newTestPlanner(places)

	got, err := planner.ReplaceStop(context.Background(), fourStopOption(t, places), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 602, got.Days[0].Stops[1].Place.PlaceID, "tier 1 wins even when a tier 2 place is closer")
}

func TestReplaceStopNoCandidates(t *testing.T) {
	all := cityCatalogPlaces()
	option := fourStopOption(t, all)

	onlyRoute := make([]domain.Place, 0, 4)
	for _, s := range option.Days[0].Stops {
		onlyRoute = append(onlyRoute, s.Place)
	}
	planner := newTestPlanner(onlyRoute)

	_, err := planner.ReplaceStop(context.Background(), option, 1, 2)
	assert.ErrorIs(t, err, ErrNoReplacement)
}

func TestReplaceStopOutOfRange(t *testing.T) {
	places := cityCatalogPlaces()
	planner := newTestPlanner(places)
	option := fourStopOption(t, places)

	_, err := planner.ReplaceStop(context.Background(), option, 2, 1)
	assert.ErrorIs(t, err, ErrStopNotFound)

	_, err = planner.ReplaceStop(context.Background(), option, 1, 9)
	assert.ErrorIs(t, err, ErrStopNotFound)
}

func withoutPlace(places []domain.Place, id int) []domain.Place {
	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if p.PlaceID != id {
			out = append(out, p)
		}
	}
	return out
}

func TestReplaceStopMealStaysDining(t *testing.T) {
	places := withoutPlace(cityCatalogPlaces(), 301)
	planner := newTestPlanner(places)

	got, err := planner.ReplaceStop(context.Background(), fourStopOption(t, places), 1, 3)
	require.NoError(t, err)

	meal := got.Days[0].Stops[2]
	assert.Equal(t, 202, meal.Place.PlaceID)
	assert.Equal(t, domain.KindMeal, meal.Kind)
	assert.Equal(t, 70, meal.DurationMinutes())
}

func TestReplaceStopFallsBackToStopKind(t *testing.T) {
	places := withoutPlace(cityCatalogPlaces(), 301)
	planner := newTestPlanner(places)

	// No other nature or relaxation place exists, so any spot category qualifies.
	got, err := planner.ReplaceStop(context.Background(), fourStopOption(t, places), 1, 4)
	require.NoError(t, err)

	last := got.Days[0].Stops[3]
	assert.Equal(t, 105, last.Place.PlaceID)
	assert.Equal(t, domain.KindSpot, last.Kind)
}

func TestReplaceStopCatalogError(t *testing.T) {
	places := cityCatalogPlaces()
	planner := NewPlanner(failingCatalog{err: errCatalogDown})

	_, err := planner.ReplaceStop(context.Background(), fourStopOption(t, places), 1, 2)
	assert.ErrorIs(t, err, errCatalogDown)
}
