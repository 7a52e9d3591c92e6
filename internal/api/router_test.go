package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"trip-course-service/internal/adapters/cache"
	"trip-course-service/internal/adapters/repositories"
	"trip-course-service/internal/api/dto"
	"trip-course-service/internal/domain"
	"trip-course-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func place(id int, category string, lat, lon, rating float64) domain.Place {
	return domain.Place{
		PlaceID:  id,
		Name:     "place",
		Address:  "addr",
		Location: domain.Coordinates{Lat: lat, Lon: lon},
		Category: category,
		CityID:   1,
		Rating:   rating,
	}
}

func fixturePlaces() []domain.Place {
	return []domain.Place{
		place(101, "historic_site", 37.500, 127.000, 4.9),
		place(102, "historic_site", 37.501, 127.000, 4.8),
		place(103, "historic_site", 37.502, 127.000, 4.7),
		place(104, "museum", 37.503, 127.000, 4.6),
		place(105, "museum", 37.504, 127.000, 4.5),
		place(201, "restaurant", 37.5015, 127.001, 4.2),
		place(202, "korean", 37.5035, 127.001, 4.0),
		place(301, "cafe", 37.502, 127.002, 4.1),
		place(401, "tourist_hotel", 37.505, 127.003, 4.3),
	}
}

func newTestServer(t *testing.T, places []domain.Place) *httptest.Server {
	t.Helper()
	catalog := repositories.NewMemoryPlaceCatalog(places)

	srv := httptest.NewServer(NewRouter(Deps{
		Planner:  services.NewPlanner(catalog),
		Catalog:  catalog,
		Cache:    cache.NewMemoryTripCache(time.Minute),
		CacheTTL: time.Minute,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	res, err := http.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func generateBody() dto.GenerateCoursesRequest {
	return dto.GenerateCoursesRequest{
		Cities:    []int{1},
		StartDate: "2026-05-01",
		EndDate:   "2026-05-02",
		Keywords:  []string{"역사/문화", "relaxation"},
		Pacing:    "보통",
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	res, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))

	res2 := postJSON(t, srv.URL+"/health", map[string]string{})
	assert.Equal(t, http.StatusMethodNotAllowed, res2.StatusCode)
	assert.Equal(t, http.MethodGet, res2.Header.Get("Allow"))
}

func TestGenerateCourses(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	res := postJSON(t, srv.URL+"/courses/generate", generateBody())
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "MISS", res.Header.Get("X-Cache"))

	body := decode[dto.GenerateCoursesResponse](t, res)
	assert.Equal(t, "Your 1-night 2-day trip course", body.TripTitle)
	require.Len(t, body.Courses, 3)

	first := body.Courses[0]
	require.NotEmpty(t, first.Days)
	assert.Equal(t, "2026-05-01", first.Days[0].Date)
	stop := first.Days[0].Route[0]
	assert.Equal(t, 1, stop.Order)
	assert.Equal(t, 101, stop.ContentID)
	assert.Equal(t, "spot", stop.Type)
	assert.Equal(t, "09:00", stop.ArrivalTime)
	assert.Equal(t, "10:30", stop.DepartureTime)
	assert.Equal(t, 90, stop.DurationMinutes)

	// Same request with reordered keywords hits the cache.
	again := generateBody()
	again.Keywords = []string{"relaxation", "history_culture"}
	res2 := postJSON(t, srv.URL+"/courses/generate", again)
	require.Equal(t, http.StatusOK, res2.StatusCode)
	assert.Equal(t, "HIT", res2.Header.Get("X-Cache"))
	assert.Equal(t, body, decode[dto.GenerateCoursesResponse](t, res2))
}

func TestGenerateCoursesEmptyCatalogMatch(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	req := generateBody()
	req.Cities = []int{99}
	res := postJSON(t, srv.URL+"/courses/generate", req)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decode[dto.GenerateCoursesResponse](t, res)
	assert.Equal(t, services.NoCourseTitle, body.TripTitle)
	assert.NotNil(t, body.Courses)
	assert.Empty(t, body.Courses)
}

func TestGenerateCoursesRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	cases := map[string]func(*dto.GenerateCoursesRequest){
		"no cities":      func(r *dto.GenerateCoursesRequest) { r.Cities = nil },
		"bad date":       func(r *dto.GenerateCoursesRequest) { r.StartDate = "05/01/2026" },
		"end before":     func(r *dto.GenerateCoursesRequest) { r.EndDate = "2026-04-30" },
		"too long":       func(r *dto.GenerateCoursesRequest) { r.EndDate = "2026-05-20" },
		"negative place": func(r *dto.GenerateCoursesRequest) { r.MustVisitSpots = []int{-1} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := generateBody()
			mutate(&req)
			res := postJSON(t, srv.URL+"/courses/generate", req)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		})
	}

	res, err := http.Post(srv.URL+"/courses/generate", "application/json",
		bytes.NewBufferString(`{"cities":[1],"start_date":"2026-05-01","end_date":"2026-05-01","extra":1}`))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestReplacePlace(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	req := generateBody()
	req.EndDate = req.StartDate
	gen := decode[dto.GenerateCoursesResponse](t, postJSON(t, srv.URL+"/courses/generate", req))
	course := gen.Courses[0]
	original := course.Days[0].Route

	res := postJSON(t, srv.URL+"/courses/replace-place", dto.ReplacePlaceRequest{
		CourseOption:        course,
		DayNumber:           1,
		PlaceOrderToReplace: 2,
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	updated := decode[dto.CourseOption](t, res)
	route := updated.Days[0].Route
	require.Len(t, route, len(original))
	assert.Equal(t, original[0], route[0])
	assert.NotEqual(t, original[1].ContentID, route[1].ContentID)
	assert.Equal(t, 2, route[1].Order)
	assert.Equal(t, 104, route[1].ContentID, "nearest unused history place")
	assert.Equal(t, course.ThemeTitle, updated.ThemeTitle)
}

func TestReplacePlaceErrors(t *testing.T) {
	places := []domain.Place{
		place(1, "historic_site", 37.500, 127.000, 4.5),
		place(2, "historic_site", 37.501, 127.000, 4.0),
	}
	srv := newTestServer(t, places)

	req := generateBody()
	req.EndDate = req.StartDate
	gen := decode[dto.GenerateCoursesResponse](t, postJSON(t, srv.URL+"/courses/generate", req))
	require.NotEmpty(t, gen.Courses)
	course := gen.Courses[0]
	require.Len(t, course.Days[0].Route, 2)

	res := postJSON(t, srv.URL+"/courses/replace-place", dto.ReplacePlaceRequest{
		CourseOption: course, DayNumber: 1, PlaceOrderToReplace: 2,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, map[string]string{"error": "no replacement found"}, decode[map[string]string](t, res))

	res = postJSON(t, srv.URL+"/courses/replace-place", dto.ReplacePlaceRequest{
		CourseOption: course, DayNumber: 3, PlaceOrderToReplace: 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	res = postJSON(t, srv.URL+"/courses/replace-place", dto.ReplacePlaceRequest{
		CourseOption: course, DayNumber: 0, PlaceOrderToReplace: 1,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestListPlaces(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	res, err := http.Get(srv.URL + "/places?city_id=1&limit=2")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decode[dto.ListPlacesResponse](t, res)
	require.Len(t, body.Places, 2)
	assert.Equal(t, 101, body.Places[0].ContentID)
	require.NotNil(t, body.Places[0].Lat)

	bad, err := http.Get(srv.URL + "/places?city_id=abc")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestRequestIDIsPropagated(t *testing.T) {
	srv := newTestServer(t, fixturePlaces())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "trace-123")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, "trace-123", res.Header.Get("X-Request-ID"))
}
