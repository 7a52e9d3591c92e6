package services

import (
	"trip-course-service/internal/domain"
)

// PlanDays builds every day of one option from a single scored candidate list.
//
// Day i is planned in city i mod len(CityIDs). Places visited on one day are
// excluded from later days, and each night's lodging opens the next day.
// Days without a start stop are left out; the remaining days keep their
// calendar day number.
func PlanDays(req domain.TripRequest, scored []domain.ScoredPlace, startIndex int) []domain.DailyRoute {
	if len(req.CityIDs) == 0 {
		return nil
	}

	duration := req.DurationDays()
	wantsCafe := domain.HasKeyword(req.Keywords, domain.KeywordRelaxation)
	used := newPlaceSet()

	var (
		days         []domain.DailyRoute
		continuation *domain.Place
	)

	for i := 0; i < duration; i++ {
		cityID := req.CityIDs[i%len(req.CityIDs)]

		route, lodging, ok := BuildDay(DayInput{
			Day:          i + 1,
			Date:         req.DayDate(i),
			Pools:        SplitPools(scored, cityID, req.MustVisitIDs),
			StartIndex:   startIndex,
			Pacing:       req.Pacing,
			WantsCafe:    wantsCafe,
			Continuation: continuation,
			FinalDay:     i == duration-1,
		}, used)
		if !ok {
			continue
		}

		continuation = lodging
		days = append(days, route)
	}

	return days
}
