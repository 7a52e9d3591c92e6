package domain

import (
	"math"
	"strings"
	"time"
)

type Pacing string

const (
	PacingLeisurely Pacing = "leisurely"
	PacingNormal    Pacing = "normal"
	PacingPacked    Pacing = "packed"
)

var pacingAliases = map[string]Pacing{
	"leisurely": PacingLeisurely,
	"normal":    PacingNormal,
	"packed":    PacingPacked,
	"여유롭게":      PacingLeisurely,
	"보통":        PacingNormal,
	"알차게":       PacingPacked,
	"빠르게":       PacingPacked,
}

// ParsePacing accepts canonical names and client aliases.
// Unknown or empty values fall back to normal pacing.
func ParsePacing(s string) Pacing {
	if p, ok := pacingAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p
	}
	return PacingNormal
}

// SpotCap is the maximum number of spot stops per day.
func (p Pacing) SpotCap() int {
	switch p {
	case PacingLeisurely:
		return 3
	case PacingPacked:
		return 5
	default:
		return 4
	}
}

// Strategy selects one of the fixed scoring weight tuples.
type Strategy string

const (
	StrategyDefault   Strategy = "default"
	StrategyHiddenGem Strategy = "hidden_gem"
)

// Weights for popularity, rarity and personalization.
type Weights struct {
	Popularity      float64
	Rarity          float64
	Personalization float64
}

func (s Strategy) Weights() Weights {
	if s == StrategyHiddenGem {
		return Weights{Popularity: 0.3, Rarity: 0.4, Personalization: 0.3}
	}
	return Weights{Popularity: 0.5, Rarity: 0.2, Personalization: 0.3}
}

// A traveler's planning request. Dates are calendar days; EndDate is inclusive.
// Companions is carried through for collaborators and does not affect planning.
type TripRequest struct {
	CityIDs      []int
	StartDate    time.Time
	EndDate      time.Time
	Keywords     []string
	Companions   string
	Pacing       Pacing
	MustVisitIDs []int
}

// DurationDays counts the trip days including both ends.
func (r TripRequest) DurationDays() int {
	start := truncateDay(r.StartDate)
	end := truncateDay(r.EndDate)
	days := int(math.Round(end.Sub(start).Hours()/24)) + 1
	if days < 0 {
		return 0
	}
	return days
}

// DayDate returns the calendar date of the zero-based trip day.
func (r TripRequest) DayDate(index int) time.Time {
	return truncateDay(r.StartDate).AddDate(0, 0, index)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
