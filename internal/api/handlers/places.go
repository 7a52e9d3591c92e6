package handlers

import (
	"log"
	"net/http"
	"strconv"
	"trip-course-service/internal/api/dto"
	"trip-course-service/internal/platform/obs"
	"trip-course-service/internal/ports"
)

const (
	defaultPlaceLimit = 20
	maxPlaceLimit     = 100
)

type PlaceHandler struct {
	Catalog ports.PlaceCatalog
}

// List returns the best rated places of one city.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()

	cityID, err := strconv.Atoi(q.Get("city_id"))
	if err != nil || cityID <= 0 {
		writeError(w, r, http.StatusBadRequest, "city_id must be a positive integer")
		return
	}

	limit := defaultPlaceLimit
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPlaceLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
	}

	places, err := h.Catalog.ListPlaces(r.Context(), cityID, limit)
	if err != nil {
		log.Printf("req_id=%s list places failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlacesResponse{Places: make([]dto.Place, 0, len(places))}
	for _, p := range places {
		res.Places = append(res.Places, dto.NewPlace(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}
