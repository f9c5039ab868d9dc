package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"route-weather-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastOK = `{
  "latitude": 37.77,
  "longitude": -122.42,
  "timezone": "America/Los_Angeles",
  "hourly": {
    "time": ["2026-02-16T00:00", "2026-02-16T01:00", "2026-02-16T02:00"],
    "temperature_2m": [10.1, 9.8, 9.5],
    "apparent_temperature": [8.0, 7.5, 7.1],
    "precipitation": [0.0, 0.4, 5.2],
    "precipitation_probability": [5, 40, null],
    "weather_code": [2, 61, 63],
    "wind_speed_10m": [12.0, 18.5, 22.0],
    "relative_humidity_2m": [70, 82, 90]
  }
}`

func TestHourlyForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "37.7749", q.Get("latitude"))
		assert.Equal(t, "-122.4194", q.Get("longitude"))
		assert.Equal(t, "2026-02-16", q.Get("start_date"))
		assert.Equal(t, "2026-02-16", q.Get("end_date"))
		assert.Equal(t, "auto", q.Get("timezone"))
		assert.Contains(t, q.Get("hourly"), "weather_code")

		_, _ = w.Write([]byte(forecastOK))
	}))
	defer srv.Close()

	p := NewForecastProvider(srv.URL, srv.Client())
	day := time.Date(2026, 2, 16, 23, 30, 0, 0, time.UTC)

	series, err := p.HourlyForecast(context.Background(), domain.GeoPoint{Lat: 37.774929, Lng: -122.419416}, day)
	require.NoError(t, err)

	require.Len(t, series.Time, 3)
	assert.Equal(t, []int{2, 61, 63}, series.WeatherCode)
	assert.Equal(t, []int{5, 40, 0}, series.PrecipitationProb, "null becomes 0")

	o, err := series.At(1)
	require.NoError(t, err)
	assert.Equal(t, domain.WeatherObservation{
		TemperatureC:         9.8,
		ApparentTemperatureC: 7.5,
		PrecipitationMM:      0.4,
		PrecipitationProb:    40,
		WeatherCode:          61,
		Description:          "Slight rain",
		WindSpeedKMH:         18.5,
		HumidityPercent:      82,
	}, o)
}

func TestHourlyForecastErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"api error", http.StatusBadRequest, `{"error": true, "reason": "Parameter 'start_date' is out of allowed range"}`},
		{"no hourly", http.StatusOK, `{"latitude": 1}`},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewForecastProvider(srv.URL, srv.Client()).
				HourlyForecast(context.Background(), domain.GeoPoint{}, time.Now())
			assert.Error(t, err)
		})
	}
}

func TestNewForecastProviderDefaults(t *testing.T) {
	p := NewForecastProvider("", nil)
	assert.Equal(t, DefaultBaseURL, p.baseURL)
	assert.NotNil(t, p.session)
}
