package domain

import "time"

type StopKind string

const (
	KindSpot          StopKind = "spot"
	KindMeal          StopKind = "meal"
	KindAccommodation StopKind = "accommodation"
)

// Represents a single stop in a day route.
// Accommodation markers that open or close a day have zero duration.
type RouteStop struct {
	Order    int
	Place    Place
	Kind     StopKind
	ArriveAt time.Time
	DepartAt time.Time
}

// DurationMinutes is the dwell time at the stop.
func (s RouteStop) DurationMinutes() int {
	return int(s.DepartAt.Sub(s.ArriveAt) / time.Minute)
}

// Represents the chronological stop sequence of one trip day.
// Orders are contiguous starting at 1 and arrivals never go backwards.
type DailyRoute struct {
	Day   int
	Date  time.Time
	Stops []RouteStop
}

// One themed alternative itinerary covering the trip days that could be planned.
type CourseOption struct {
	ThemeTitle string
	Strategy   Strategy
	Days       []DailyRoute
}

// Clone returns a deep copy whose stop slices can be modified independently.
func (c CourseOption) Clone() CourseOption {
	out := CourseOption{
		ThemeTitle: c.ThemeTitle,
		Strategy:   c.Strategy,
		Days:       make([]DailyRoute, len(c.Days)),
	}
	for i, d := range c.Days {
		stops := make([]RouteStop, len(d.Stops))
		copy(stops, d.Stops)
		out.Days[i] = DailyRoute{Day: d.Day, Date: d.Date, Stops: stops}
	}
	return out
}

// Result of a planning request.
// Courses is empty (not nil) when no place matched the request.
type TripPlan struct {
	Title   string
	Courses []CourseOption
}
