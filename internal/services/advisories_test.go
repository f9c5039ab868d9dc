package services

import (
	"context"
	"route-weather-service/internal/adapters/mock"
	"route-weather-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticNamer struct {
	names map[domain.PlaceKey]string
	calls int
	seen  int
}

func (s *staticNamer) Resolve(_ context.Context, points []domain.GeoPoint) map[domain.PlaceKey]string {
	s.calls++
	s.seen += len(points)
	return s.names
}

func advisoryTypes(advs []domain.Advisory) []string {
	out := make([]string, 0, len(advs))
	for _, a := range advs {
		out = append(out, a.Type+"/"+string(a.Severity))
	}
	return out
}

func TestCollectAdvisoriesRules(t *testing.T) {
	tests := []struct {
		name string
		obs  *domain.WeatherObservation
		want []string
	}{
		{"clear", obsWith(0, 10, 0, 0), []string{}},
		{"code 65", obsWith(65, 0, 0, 0), []string{"heavy_rain/danger"}},
		{"heavy precipitation", obsWith(3, 0, 7.5, 0), []string{"heavy_rain/danger"}},
		{"code 63", obsWith(63, 0, 0, 0), []string{"moderate_rain/warning"}},
		{"moderate precipitation", obsWith(2, 0, 4.0, 0), []string{"moderate_rain/warning"}},
		{"freezing", obsWith(66, 0, 0, 0), []string{"freezing_rain/danger"}},
		{"heavy snow", obsWith(75, 0, 0, 0), []string{"heavy_snow/danger"}},
		{"snow", obsWith(71, 0, 0, 0), []string{"snow/warning"}},
		{"dangerous wind", obsWith(0, 75, 0, 0), []string{"high_wind/danger"}},
		{"strong wind", obsWith(0, 50, 0, 0), []string{"high_wind/warning"}},
		{"thunderstorm", obsWith(95, 0, 0, 0), []string{"thunderstorm/danger"}},
		{"hail 96", obsWith(96, 0, 0, 0), []string{"hail/danger"}},
		{"hail 99", obsWith(99, 0, 0, 0), []string{"hail/danger"}},
		{"fog", obsWith(45, 0, 0, 0), []string{"fog/warning"}},
		{"rain and wind", obsWith(82, 60, 9, 0), []string{"heavy_rain/danger", "high_wind/warning"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes := []domain.RouteWithWeather{routeWith(0, 30, tt.obs)}

			got := CollectAdvisories(context.Background(), routes, &staticNamer{})

			require.Len(t, got, 1)
			assert.Equal(t, tt.want, advisoryTypes(got[0]))
		})
	}
}

func TestCollectAdvisoriesFirstTriggerWins(t *testing.T) {
	r := routeWith(0, 60,
		obsWith(0, 55, 0, 0),
		obsWith(0, 70, 0, 0),
	)
	first := r.Waypoints[0].Location.PlaceKey()
	second := r.Waypoints[1].Location.PlaceKey()
	namer := &staticNamer{names: map[domain.PlaceKey]string{first: "Daly City, CA", second: "Pacifica, CA"}}

	got := CollectAdvisories(context.Background(), []domain.RouteWithWeather{r}, namer)

	require.Len(t, got[0], 1)
	assert.Equal(t, domain.Advisory{
		Type:     "high_wind",
		Severity: domain.SeverityWarning,
		Message:  "Strong winds (55 km/h) near Daly City, CA",
	}, got[0][0])
}

func TestCollectAdvisoriesOrdering(t *testing.T) {
	r := routeWith(0, 60,
		obsWith(45, 0, 0, 0),
		obsWith(71, 80, 0, 0),
		obsWith(95, 0, 0, 0),
	)

	got := CollectAdvisories(context.Background(), []domain.RouteWithWeather{r}, &staticNamer{})

	assert.Equal(t, []string{
		"high_wind/danger",
		"thunderstorm/danger",
		"fog/warning",
		"snow/warning",
	}, advisoryTypes(got[0]))
}

func TestCollectAdvisoriesUnknownLocation(t *testing.T) {
	r := routeWith(0, 30, obsWith(48, 0, 0, 0))

	got := CollectAdvisories(context.Background(), []domain.RouteWithWeather{r}, &staticNamer{})

	require.Len(t, got[0], 1)
	assert.Equal(t, "Fog near unknown location \u2014 reduced visibility", got[0][0].Message)
}

func TestCollectAdvisoriesFreezingRainMessage(t *testing.T) {
	r := routeWith(0, 30, obsWith(57, 0, 0, 0))

	got := CollectAdvisories(context.Background(), []domain.RouteWithWeather{r}, &staticNamer{})

	require.Len(t, got[0], 1)
	assert.Equal(t, "Freezing rain/drizzle near unknown location \u2014 road ice likely", got[0][0].Message)
}

func TestCollectAdvisoriesSharesOneGeocodeBatch(t *testing.T) {
	a := routeWith(0, 30, obsWith(65, 0, 0, 0))
	b := routeWith(1, 35, obsWith(65, 0, 0, 0), obsWith(0, 0, 0, 0))
	c := routeWith(2, 40, obsWith(0, 0, 0, 0))

	geocoder := &mock.GeocodeProvider{Places: map[domain.PlaceKey]domain.Place{
		a.Waypoints[0].Location.PlaceKey(): {Locality: "Oakland", Region: "CA"},
	}}
	resolver := NewPlaceResolver(geocoder, nil, nil, nil)

	got := CollectAdvisories(context.Background(), []domain.RouteWithWeather{a, b, c}, resolver)

	require.Len(t, got, 3)
	assert.Equal(t, "Heavy rain expected near Oakland, CA", got[0][0].Message)
	assert.Equal(t, "Heavy rain expected near Oakland, CA", got[1][0].Message)
	assert.Empty(t, got[2])
	assert.NotNil(t, got[2])
	assert.Equal(t, 1, geocoder.Calls(), "both routes share the same rounded location")
}
