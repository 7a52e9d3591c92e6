package dto

// Body of POST /courses/generate. Dates are YYYY-MM-DD; end_date is inclusive.
type GenerateCoursesRequest struct {
	Cities         []int    `json:"cities" validate:"required,min=1,dive,gt=0"`
	StartDate      string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	Keywords       []string `json:"keywords" validate:"omitempty,dive,required"`
	Companions     string   `json:"companions"`
	Pacing         string   `json:"pacing"`
	MustVisitSpots []int    `json:"must_visit_spots" validate:"omitempty,dive,gt=0"`
}

type GenerateCoursesResponse struct {
	TripTitle string         `json:"trip_title"`
	Courses   []CourseOption `json:"courses"`
}

type CourseOption struct {
	ThemeTitle string       `json:"theme_title"`
	Strategy   string       `json:"strategy,omitempty"`
	Days       []DailyRoute `json:"days" validate:"dive"`
}

type DailyRoute struct {
	Day   int         `json:"day" validate:"gte=1"`
	Date  string      `json:"date" validate:"required,datetime=2006-01-02"`
	Route []RouteStop `json:"route" validate:"dive"`
}

// Arrival and departure are local "HH:MM" on the route date.
type RouteStop struct {
	Order           int    `json:"order" validate:"gte=1"`
	ContentID       int    `json:"content_id" validate:"gt=0"`
	Type            string `json:"type" validate:"omitempty,oneof=spot meal accommodation"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Address         string `json:"address"`
	ArrivalTime     string `json:"arrival_time" validate:"required,datetime=15:04"`
	DepartureTime   string `json:"departure_time" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes"`
}

// Body of POST /courses/replace-place.
type ReplacePlaceRequest struct {
	CourseOption        CourseOption `json:"course_option"`
	DayNumber           int          `json:"day_number" validate:"gte=1"`
	PlaceOrderToReplace int          `json:"place_order_to_replace" validate:"gte=1"`
}

type Place struct {
	ContentID     int      `json:"content_id"`
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Category      string   `json:"category"`
	CityID        int      `json:"city_id"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	Rating        float64  `json:"rating"`
	Concentration *float64 `json:"concentration"`
}

type ListPlacesResponse struct {
	Places []Place `json:"places"`
}
