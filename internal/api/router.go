package api

import (
	"net/http"
	"time"
	"trip-course-service/internal/api/handlers"
	"trip-course-service/internal/ports"
)

// Dependencies the HTTP layer needs. Cache may be nil.
type Deps struct {
	Planner  handlers.CoursePlanner
	Catalog  ports.PlaceCatalog
	Cache    ports.TripCache
	CacheTTL time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	courses := &handlers.CourseHandler{
		Planner:  deps.Planner,
		Catalog:  deps.Catalog,
		Cache:    deps.Cache,
		CacheTTL: deps.CacheTTL,
	}
	places := &handlers.PlaceHandler{Catalog: deps.Catalog}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/places", places.List)
	mux.HandleFunc("/courses/generate", courses.Generate)
	mux.HandleFunc("/courses/replace-place", courses.ReplacePlace)

	return requestIDMiddleware(loggingMiddleware(mux))
}
