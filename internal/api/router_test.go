package api

import (
	"net/http"
	"net/http/httptest"
	"route-weather-service/internal/adapters/cache"
	"route-weather-service/internal/adapters/mock"
	"route-weather-service/internal/adapters/model"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/geo"
	"route-weather-service/internal/platform/metrics"
	"route-weather-service/internal/services"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestRouter(t *testing.T) (http.Handler, *mock.RoutingProvider) {
	t.Helper()

	a := domain.GeoPoint{Lat: 38.5, Lng: -121.5}
	b := domain.GeoPoint{Lat: 38.509, Lng: -121.49}
	routing := mock.NewRoutingProvider(map[string]*domain.RouteSet{
		"a|b": {
			OriginAddress:      "A",
			DestinationAddress: "B",
			Routes: []domain.Route{{
				OverviewPolyline: geo.EncodePolyline([]domain.GeoPoint{a, b}),
				Summary:          "Main St",
				Steps: []domain.RouteStep{{
					Polyline:        geo.EncodePolyline([]domain.GeoPoint{a, b}),
					DurationSeconds: 600,
					DistanceMeters:  1300,
				}},
			}},
		},
	})

	m := metrics.NewCollector()
	rec := services.NewRecommender(services.RecommenderDeps{
		Routing:  routing,
		Weather:  &mock.WeatherProvider{Default: domain.WeatherObservation{WeatherCode: 1}},
		Geocoder: &mock.GeocodeProvider{},
		Model:    model.NewPenaltyModel(),
		Cache:    cache.NewMemoryResponseCache(time.Minute, 10),
		Metrics:  m,
	})

	return NewRouter(rec, m, "http://localhost:5173", zaptest.NewLogger(t)), routing
}

func TestRouterRouteWeather(t *testing.T) {
	h, routing := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/route-weather", strings.NewReader(`{"origin":"a","destination":"b"}`))
		h.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Contains(t, rr.Body.String(), `"recommended_route_index":0`)
	}
	assert.Equal(t, 1, routing.Calls())
}

func TestRouterUnknownRoute(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/route-weather", strings.NewReader(`{"origin":"a","destination":"nowhere"}`))
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Directions API error")
}

func TestRouterRequestID(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, rr.Header().Get("X-Request-ID"), 36)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc")
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc", rr.Header().Get("X-Request-ID"))
}

func TestRouterCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/route-weather", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/route-weather", strings.NewReader(`{"origin":"a","destination":"b"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "route_weather_")
}

func TestRouterWithoutMetrics(t *testing.T) {
	h := NewRouter(nil, nil, "", nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
