package domain

import (
	"sort"
	"strings"
)

// Keyword groups a traveler can pick from.
const (
	KeywordNature     = "nature"
	KeywordHistory    = "history_culture"
	KeywordRelaxation = "relaxation"
	KeywordActivity   = "activity"
	KeywordFood       = "food"
	KeywordShopping   = "shopping"
)

// Static many-to-many mapping from keyword to fine-grained catalog categories.
// A category may belong to more than one keyword group.
var keywordCategories = map[string][]string{
	KeywordNature: {
		"national_park", "provincial_park", "county_park", "mountain", "eco_tourism_site",
		"recreational_forest", "arboretum", "waterfall", "valley", "mineral_spring",
		"coastal_scenery", "beach", "island", "harbor", "lighthouse", "lake", "river",
		"cave", "park",
	},
	KeywordHistory: {
		"museum", "memorial_hall", "exhibition_hall", "art_gallery", "performance_hall",
		"cultural_center", "library", "heritage_training_center", "palace", "fortress",
		"gate", "historic_house", "birthplace", "folk_village", "historic_site", "temple",
		"religious_site", "security_tourism",
	},
	KeywordRelaxation: {
		"cafe", "hot_spring_spa", "jjimjilbang", "park", "recreational_forest", "arboretum",
	},
	KeywordActivity: {
		"water_sports", "air_sports", "training_facility", "stadium", "cycling", "kart",
		"golf", "horse_riding", "ski_snowboard", "sledding", "shooting_range", "campground",
		"rock_climbing", "survival_game", "atv", "mtb", "bungee_jump", "trekking",
		"rural_experience", "traditional_experience", "temple_stay", "unique_experience",
	},
	KeywordFood: {
		"restaurant", "korean", "western", "japanese", "chinese", "specialty_restaurant", "cafe",
	},
	KeywordShopping: {
		"five_day_market", "permanent_market", "department_store", "duty_free",
		"hypermarket", "specialty_store", "crafts_workshop", "local_specialty_shop",
	},
}

// Labels sent by the Korean web client.
var keywordAliases = map[string]string{
	"자연":      KeywordNature,
	"역사/문화":   KeywordHistory,
	"휴식/힐링":   KeywordRelaxation,
	"액티비티/체험": KeywordActivity,
	"맛집":      KeywordFood,
	"쇼핑":      KeywordShopping,
}

var lodgingCategories = []string{
	"hanok", "pension", "motel", "guesthouse", "tourist_hotel", "condominium",
}

var cafeCategories = []string{"cafe"}

// Dwell minutes per category. Missing entries fall back to the kind default.
var stayMinutes = map[string]int{
	"museum":                 120,
	"art_gallery":            120,
	"historic_site":          90,
	"temple":                 70,
	"recreational_forest":    100,
	"beach":                  120,
	"theme_park":             150,
	"performance_hall":       120,
	"cultural_center":        120,
	"water_sports":           150,
	"air_sports":             150,
	"rural_experience":       120,
	"traditional_experience": 120,
	"temple_stay":            120,
	"unique_experience":      120,
	"restaurant":             70,
	"cafe":                   60,
}

const (
	defaultSpotMinutes = 90
	defaultMealMinutes = 70
)

var (
	lodgingSet = toSet(lodgingCategories)
	cafeSet    = toSet(cafeCategories)
	diningSet  = buildDiningSet()
	spotSet    = buildSpotSet()
)

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}

// Food-group categories that are scheduled as meals (cafes are not).
func buildDiningSet() map[string]struct{} {
	out := map[string]struct{}{}
	for _, c := range keywordCategories[KeywordFood] {
		if _, ok := cafeSet[c]; ok {
			continue
		}
		out[c] = struct{}{}
	}
	return out
}

// Every grouped category that is neither a meal, a cafe nor lodging.
func buildSpotSet() map[string]struct{} {
	out := map[string]struct{}{}
	for _, cats := range keywordCategories {
		for _, c := range cats {
			if _, ok := diningSet[c]; ok {
				continue
			}
			if _, ok := cafeSet[c]; ok {
				continue
			}
			out[c] = struct{}{}
		}
	}
	return out
}

// NormalizeKeyword maps aliases and casing onto a canonical keyword.
// Unknown keywords are returned trimmed and lower-cased.
func NormalizeKeyword(k string) string {
	k = strings.TrimSpace(k)
	if canon, ok := keywordAliases[k]; ok {
		return canon
	}
	return strings.ToLower(k)
}

// HasKeyword reports whether the keyword list contains want after normalization.
func HasKeyword(keywords []string, want string) bool {
	for _, k := range keywords {
		if NormalizeKeyword(k) == want {
			return true
		}
	}
	return false
}

// CategoriesForKeywords expands keywords into the set of mapped categories.
// Unknown keywords contribute nothing.
func CategoriesForKeywords(keywords []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, k := range keywords {
		for _, c := range keywordCategories[NormalizeKeyword(k)] {
			out[c] = struct{}{}
		}
	}
	return out
}

// GroupCategoriesFor returns the union of every keyword group containing category.
// Lodging categories map to the lodging set.
func GroupCategoriesFor(category string) map[string]struct{} {
	if IsLodging(category) {
		return toSet(lodgingCategories)
	}
	out := map[string]struct{}{}
	for _, cats := range keywordCategories {
		member := false
		for _, c := range cats {
			if c == category {
				member = true
				break
			}
		}
		if !member {
			continue
		}
		for _, c := range cats {
			out[c] = struct{}{}
		}
	}
	return out
}

func LodgingCategories() []string { return append([]string(nil), lodgingCategories...) }

func DiningCategories() []string { return sortedKeys(diningSet) }

func SpotCategories() []string { return sortedKeys(spotSet) }

func IsLodging(category string) bool {
	_, ok := lodgingSet[category]
	return ok
}

func IsDining(category string) bool {
	_, ok := diningSet[category]
	return ok
}

func IsCafe(category string) bool {
	_, ok := cafeSet[category]
	return ok
}

func IsSpot(category string) bool {
	_, ok := spotSet[category]
	return ok
}

// KindForCategory decides how a stop at this category is scheduled.
// Cafes count as spots.
func KindForCategory(category string) StopKind {
	switch {
	case IsLodging(category):
		return KindAccommodation
	case IsDining(category):
		return KindMeal
	default:
		return KindSpot
	}
}

// StayMinutes returns the dwell time for a visit of the given kind.
// Accommodation markers never have a dwell.
func StayMinutes(category string, kind StopKind) int {
	if kind == KindAccommodation {
		return 0
	}
	if m, ok := stayMinutes[category]; ok {
		return m
	}
	if kind == KindMeal {
		return defaultMealMinutes
	}
	return defaultSpotMinutes
}

// SortedCategories flattens a category set in a stable order, for queries and logs.
func SortedCategories(set map[string]struct{}) []string {
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
