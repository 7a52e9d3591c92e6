package services

import (
	"math"
	"time"
	"trip-course-service/internal/domain"
)

// Average door-to-door travel speed between stops.
const avgSpeedKmh = 40.0

var (
	dayStartClock = clock{9, 0}
	dayEndClock   = clock{21, 0}
)

// A meal slot; From is inclusive, Until exclusive.
type mealWindow struct {
	name  string
	from  clock
	until clock
}

var mealWindows = []mealWindow{
	{name: "lunch", from: clock{12, 0}, until: clock{13, 30}},
	{name: "dinner", from: clock{18, 0}, until: clock{19, 30}},
}

type clock struct{ hour, minute int }

func (c clock) on(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.hour, c.minute, 0, 0, date.Location())
}

// openMealWindow returns the unfilled meal window containing t, if any.
func openMealWindow(t time.Time, filled map[string]bool) (string, bool) {
	for _, w := range mealWindows {
		if filled[w.name] {
			continue
		}
		if !t.Before(w.from.on(t)) && t.Before(w.until.on(t)) {
			return w.name, true
		}
	}
	return "", false
}

// travelMinutes converts a haversine distance into driving minutes.
func travelMinutes(distanceKm float64) float64 {
	return distanceKm / avgSpeedKmh * 60
}

// travelTime estimates the leg between two coordinates.
// Legs touching a place without coordinates are treated as zero length.
func travelTime(from, to domain.Coordinates) time.Duration {
	km := from.DistanceKm(to)
	if math.IsInf(km, 0) || math.IsNaN(km) {
		return 0
	}
	return time.Duration(travelMinutes(km) * float64(time.Minute))
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
