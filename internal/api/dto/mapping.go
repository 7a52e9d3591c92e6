package dto

import "trip-course-service/internal/domain"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// NewGenerateCoursesResponse renders a plan for the wire.
func NewGenerateCoursesResponse(plan *domain.TripPlan) GenerateCoursesResponse {
	res := GenerateCoursesResponse{
		TripTitle: plan.Title,
		Courses:   make([]CourseOption, 0, len(plan.Courses)),
	}
	for _, c := range plan.Courses {
		res.Courses = append(res.Courses, NewCourseOption(c))
	}
	return res
}

// NewCourseOption renders times as HH:MM and dates as YYYY-MM-DD.
func NewCourseOption(c domain.CourseOption) CourseOption {
	out := CourseOption{
		ThemeTitle: c.ThemeTitle,
		Strategy:   string(c.Strategy),
		Days:       make([]DailyRoute, 0, len(c.Days)),
	}

	for _, d := range c.Days {
		day := DailyRoute{
			Day:   d.Day,
			Date:  d.Date.Format(DateLayout),
			Route: make([]RouteStop, 0, len(d.Stops)),
		}
		for _, s := range d.Stops {
			day.Route = append(day.Route, RouteStop{
				Order:           s.Order,
				ContentID:       s.Place.PlaceID,
				Type:            string(s.Kind),
				Name:            s.Place.Name,
				Category:        s.Place.Category,
				Address:         s.Place.Address,
				ArrivalTime:     s.ArriveAt.Format(ClockLayout),
				DepartureTime:   s.DepartAt.Format(ClockLayout),
				DurationMinutes: s.DurationMinutes(),
			})
		}
		out.Days = append(out.Days, day)
	}

	return out
}

// NewPlace omits lat/lon for places without a usable location.
func NewPlace(p domain.Place) Place {
	out := Place{
		ContentID:     p.PlaceID,
		Name:          p.Name,
		Address:       p.Address,
		Category:      p.Category,
		CityID:        p.CityID,
		Rating:        p.Rating,
		Concentration: p.Concentration,
	}
	if p.Location.Valid() {
		lat, lon := p.Location.Lat, p.Location.Lon
		out.Lat, out.Lon = &lat, &lon
	}
	return out
}
