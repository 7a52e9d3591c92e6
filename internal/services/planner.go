package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
)

// Title returned when no place matched the request.
const NoCourseTitle = "No course could be found"

// One generated alternative: the scoring strategy and the rank of the
// spot used to open days without a must-visit place or lodging.
type optionVariant struct {
	strategy   domain.Strategy
	startIndex int
	theme      string
}

var optionVariants = []optionVariant{
	{strategy: domain.StrategyDefault, startIndex: 0, theme: "Popular course: top pick"},
	{strategy: domain.StrategyDefault, startIndex: 1, theme: "Popular course: alternate pick"},
	{strategy: domain.StrategyHiddenGem, startIndex: 0, theme: "Hidden gem course: low-traffic pick"},
}

// Planner generates and edits trip courses against a place catalog.
// It holds no per-request state and is safe for concurrent use.
type Planner struct {
	catalog ports.PlaceCatalog
}

func NewPlanner(catalog ports.PlaceCatalog) *Planner {
	return &Planner{catalog: catalog}
}

// Generate produces up to three course options for the request.
//
// Options whose days all came out empty are dropped. If no place matches
// the request at all, the plan carries NoCourseTitle and no courses.
func (p *Planner) Generate(ctx context.Context, req domain.TripRequest) (_ *domain.TripPlan, err error) {
	defer obs.Time(ctx, "planner.Generate")(&err)

	candidates, err := QueryCandidates(ctx, p.catalog, req)
	if errors.Is(err, ErrEmptyCandidateSet) {
		log.Printf("generate: no candidates for cities=%v keywords=%v", req.CityIDs, req.Keywords)
		return &domain.TripPlan{Title: NoCourseTitle, Courses: []domain.CourseOption{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	userCategories := domain.CategoriesForKeywords(req.Keywords)
	scored := make(map[domain.Strategy][]domain.ScoredPlace, 2)

	courses := make([]domain.CourseOption, 0, len(optionVariants))
	for _, v := range optionVariants {
		if _, ok := scored[v.strategy]; !ok {
			scored[v.strategy] = ScorePlaces(candidates, userCategories, v.strategy)
		}

		days := PlanDays(req, scored[v.strategy], v.startIndex)
		if len(days) == 0 {
			log.Printf("generate: option %q produced no days", v.theme)
			continue
		}

		courses = append(courses, domain.CourseOption{
			ThemeTitle: v.theme,
			Strategy:   v.strategy,
			Days:       days,
		})
	}

	return &domain.TripPlan{
		Title:   TripTitle(req.DurationDays()),
		Courses: courses,
	}, nil
}

// TripTitle names a trip by its nights and days.
func TripTitle(durationDays int) string {
	nights := durationDays - 1
	if nights < 0 {
		nights = 0
	}
	return fmt.Sprintf("Your %d-night %d-day trip course", nights, durationDays)
}
