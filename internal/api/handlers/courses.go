package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
	"trip-course-service/internal/api/dto"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
	"trip-course-service/internal/services"
)

// CoursePlanner is the planning core as seen by the HTTP layer.
type CoursePlanner interface {
	Generate(ctx context.Context, req domain.TripRequest) (*domain.TripPlan, error)
	ReplaceStop(ctx context.Context, option domain.CourseOption, dayNumber, order int) (*domain.CourseOption, error)
}

type CourseHandler struct {
	Planner CoursePlanner
	Catalog ports.PlaceCatalog
	// Optional; generation results are cached for CacheTTL when set.
	Cache    ports.TripCache
	CacheTTL time.Duration
}

// Generate plans up to three course options for a trip request.
func (h *CourseHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.GenerateCoursesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tripReq, err := toTripRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	reqID := obs.RequestID(ctx)
	key := cacheKey(tripReq)

	if h.Cache != nil {
		body, ok, err := h.Cache.Get(ctx, key)
		if err != nil {
			log.Printf("req_id=%s course cache get failed: %v", reqID, err)
		} else if ok {
			w.Header().Set("X-Cache", "HIT")
			writeRawJSON(w, r, http.StatusOK, body)
			return
		}
	}

	plan, err := h.Planner.Generate(ctx, tripReq)
	if err != nil {
		log.Printf("req_id=%s generate courses failed: %v", reqID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	body, err := json.Marshal(dto.NewGenerateCoursesResponse(plan))
	if err != nil {
		log.Printf("req_id=%s encode courses failed: %v", reqID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, key, body, h.CacheTTL); err != nil {
			log.Printf("req_id=%s course cache set failed: %v", reqID, err)
		}
		w.Header().Set("X-Cache", "MISS")
	}

	writeRawJSON(w, r, http.StatusOK, body)
}

// ReplacePlace swaps one stop of a submitted course for a nearby alternative.
func (h *CourseHandler) ReplacePlace(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ReplacePlaceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	reqID := obs.RequestID(ctx)

	option, err := courseFromDTO(ctx, h.Catalog, req.CourseOption)
	if errors.Is(err, ErrInvalidRequest) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("req_id=%s replace place failed: %v", reqID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	updated, err := h.Planner.ReplaceStop(ctx, option, req.DayNumber, req.PlaceOrderToReplace)
	switch {
	case errors.Is(err, services.ErrNoReplacement):
		writeError(w, r, http.StatusNotFound, "no replacement found")
		return
	case errors.Is(err, services.ErrStopNotFound):
		writeError(w, r, http.StatusUnprocessableEntity, "day_number or place_order_to_replace is out of range")
		return
	case err != nil:
		log.Printf("req_id=%s replace place failed: %v", reqID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewCourseOption(*updated))
}
