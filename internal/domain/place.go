package domain

// DefaultRating is used for places nobody has reviewed yet.
const DefaultRating = 3.0

// Represents a single catalog entry that can be visited on a trip.
// Places are read-only from the planner's point of view.
type Place struct {
	PlaceID  int
	Name     string
	Address  string
	Location Coordinates
	Category string
	CityID   int
	// Average review rating on a 0-5 scale.
	Rating float64
	// Popularity density on a 0-100 scale; nil when unknown.
	Concentration *float64
}

// Kind classifies the place by its category.
func (p Place) Kind() StopKind {
	return KindForCategory(p.Category)
}

// A Place plus the score assigned by one strategy.
// Scores are only comparable within the same strategy.
type ScoredPlace struct {
	Place
	Score    float64
	Strategy Strategy
}
