package services

import (
	"time"
	"trip-course-service/internal/domain"
)

// Candidate pools for a single city, each in descending score order.
type DayPools struct {
	MustVisit []domain.ScoredPlace
	Spots     []domain.ScoredPlace
	Meals     []domain.ScoredPlace
	Cafes     []domain.ScoredPlace
	Lodging   []domain.ScoredPlace
}

// SplitPools partitions scored places of one city by how they get scheduled.
// Must-visit places go only to the must-visit pool.
func SplitPools(scored []domain.ScoredPlace, cityID int, mustVisit []int) DayPools {
	mv := newPlaceSet(mustVisit...)

	var pools DayPools
	for _, sp := range scored {
		if sp.CityID != cityID {
			continue
		}
		switch {
		case mv.has(sp.PlaceID):
			pools.MustVisit = append(pools.MustVisit, sp)
		case domain.IsLodging(sp.Category):
			pools.Lodging = append(pools.Lodging, sp)
		case domain.IsDining(sp.Category):
			pools.Meals = append(pools.Meals, sp)
		case domain.IsCafe(sp.Category):
			pools.Cafes = append(pools.Cafes, sp)
		case domain.IsSpot(sp.Category):
			pools.Spots = append(pools.Spots, sp)
		}
	}
	return pools
}

// Inputs for building one day. Continuation is the lodging the previous
// day ended at, if any.
type DayInput struct {
	Day          int
	Date         time.Time
	Pools        DayPools
	StartIndex   int
	Pacing       domain.Pacing
	WantsCafe    bool
	Continuation *domain.Place
	FinalDay     bool
}

// Mutable state while a day is being filled.
type dayBuilder struct {
	in        DayInput
	used      placeSet
	stops     []domain.RouteStop
	here      domain.Coordinates
	spotCount int
	meals     map[string]bool
	cafeAdded bool
}

// BuildDay schedules one day with a greedy nearest-neighbour walk from 09:00.
//
// The day opens at a must-visit place, the previous night's lodging, or the
// StartIndex-th unused spot, in that order of preference. Meals are slotted
// when the clock falls inside an unfilled lunch or dinner window, a cafe may
// follow the first meal, and spots fill the rest until the pacing cap or
// 21:00 is reached. Non-final days close at the best-ranked lodging.
//
// Visited places are recorded in used, which is shared across the days of
// one option. Lodging is never recorded so it can repeat across nights.
// The returned lodging is the continuation for the next day. ok is false
// when no start stop could be found.
func BuildDay(in DayInput, used placeSet) (route domain.DailyRoute, lodging *domain.Place, ok bool) {
	b := &dayBuilder{
		in:    in,
		used:  used,
		here:  domain.NoCoordinates,
		meals: map[string]bool{},
	}

	dayStart := dayStartClock.on(in.Date)
	dayEnd := dayEndClock.on(in.Date)

	if !b.openDay(dayStart) {
		return domain.DailyRoute{}, nil, false
	}

	for {
		now := b.lastDeparture()
		if !now.Before(dayEnd) || b.spotCount >= in.Pacing.SpotCap() {
			break
		}

		next, kind, found := b.selectNext(now)
		if !found {
			break
		}
		b.visit(next.Place, kind)
	}

	if !in.FinalDay {
		if l, found := b.closeDay(); found {
			lodging = &l
		}
	}

	return domain.DailyRoute{Day: in.Day, Date: in.Date, Stops: b.stops}, lodging, true
}

func (b *dayBuilder) openDay(at time.Time) bool {
	for _, sp := range b.in.Pools.MustVisit {
		if b.used.has(sp.PlaceID) {
			continue
		}
		// Must-visit places are tracked even when they are lodging, so they
		// open at most one day.
		b.used.add(sp.PlaceID)
		b.appendStop(sp.Place, sp.Kind(), at)
		return true
	}

	if c := b.in.Continuation; c != nil {
		b.appendStop(*c, domain.KindAccommodation, at)
		return true
	}

	n := 0
	for _, sp := range b.in.Pools.Spots {
		if b.used.has(sp.PlaceID) {
			continue
		}
		if n == b.in.StartIndex {
			b.used.add(sp.PlaceID)
			b.appendStop(sp.Place, domain.KindSpot, at)
			return true
		}
		n++
	}

	return false
}

func (b *dayBuilder) selectNext(now time.Time) (domain.ScoredPlace, domain.StopKind, bool) {
	if b.in.WantsCafe && !b.cafeAdded && b.lastKind() == domain.KindMeal {
		if p, ok := nearestUnused(b.here, b.in.Pools.Cafes, b.used); ok {
			b.cafeAdded = true
			return p, domain.KindSpot, true
		}
	}

	if window, open := openMealWindow(now, b.meals); open {
		if p, ok := nearestUnused(b.here, b.in.Pools.Meals, b.used); ok {
			b.meals[window] = true
			return p, domain.KindMeal, true
		}
	}

	if p, ok := nearestUnused(b.here, b.in.Pools.Spots, b.used); ok {
		return p, domain.KindSpot, true
	}

	return domain.ScoredPlace{}, "", false
}

func (b *dayBuilder) visit(p domain.Place, kind domain.StopKind) {
	arrive := b.lastDeparture().Add(travelTime(b.here, p.Location))
	b.used.add(p.PlaceID)
	b.appendStop(p, kind, arrive)
}

// Append the top-ranked lodging as the last stop of the day.
func (b *dayBuilder) closeDay() (domain.Place, bool) {
	if len(b.in.Pools.Lodging) == 0 {
		return domain.Place{}, false
	}
	l := b.in.Pools.Lodging[0].Place
	arrive := b.lastDeparture().Add(travelTime(b.here, l.Location))
	b.appendStop(l, domain.KindAccommodation, arrive)
	return l, true
}

func (b *dayBuilder) appendStop(p domain.Place, kind domain.StopKind, arrive time.Time) {
	b.stops = append(b.stops, domain.RouteStop{
		Order:    len(b.stops) + 1,
		Place:    p,
		Kind:     kind,
		ArriveAt: arrive,
		DepartAt: arrive.Add(minutes(domain.StayMinutes(p.Category, kind))),
	})
	if kind == domain.KindSpot {
		b.spotCount++
	}
	if p.Location.Valid() {
		b.here = p.Location
	}
}

func (b *dayBuilder) lastDeparture() time.Time {
	return b.stops[len(b.stops)-1].DepartAt
}

func (b *dayBuilder) lastKind() domain.StopKind {
	return b.stops[len(b.stops)-1].Kind
}
