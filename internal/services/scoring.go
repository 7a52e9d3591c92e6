package services

import (
	"slices"
	"trip-course-service/internal/domain"
)

// ScorePlaces rates every candidate under the given strategy and returns them
// best first. Equal scores are ordered by place id so the ranking is reproducible.
func ScorePlaces(
	candidates []domain.Place,
	userCategories map[string]struct{},
	strategy domain.Strategy,
) []domain.ScoredPlace {
	w := strategy.Weights()

	out := make([]domain.ScoredPlace, 0, len(candidates))
	for _, p := range candidates {
		out = append(out, domain.ScoredPlace{
			Place:    p,
			Score:    scoreOne(p, userCategories, w),
			Strategy: strategy,
		})
	}

	slices.SortStableFunc(out, func(a, b domain.ScoredPlace) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return a.PlaceID - b.PlaceID
	})

	return out
}

func scoreOne(p domain.Place, userCategories map[string]struct{}, w domain.Weights) float64 {
	popularity := (p.Rating / 5.0) * 100

	rarity := 50.0
	if p.Concentration != nil {
		rarity = (1 - *p.Concentration/100.0) * 100
	}

	personalization := 50.0
	if _, ok := userCategories[p.Category]; ok {
		personalization = 100
	}

	return popularity*w.Popularity + rarity*w.Rarity + personalization*w.Personalization
}
