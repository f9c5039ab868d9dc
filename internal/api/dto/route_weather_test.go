package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestRouteWeatherRequestValidate(t *testing.T) {
	req := RouteWeatherRequest{Origin: "  San Francisco ", Destination: "Sacramento"}
	at, err := req.Validate()
	require.NoError(t, err)
	assert.Nil(t, at)
	assert.Equal(t, "San Francisco", req.Origin)

	req.DepartureTime = strptr("2026-02-16T10:00:00-08:00")
	at, err = req.Validate()
	require.NoError(t, err)
	require.NotNil(t, at)
	assert.True(t, at.Equal(time.Date(2026, 2, 16, 18, 0, 0, 0, time.UTC)))

	req.DepartureTime = strptr("2026-02-16T10:00")
	at, err = req.Validate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 16, 10, 0, 0, 0, time.UTC), *at)
}

func TestRouteWeatherRequestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		req  RouteWeatherRequest
		want string
	}{
		{"missing origin", RouteWeatherRequest{Destination: "b"}, "origin is required"},
		{"blank destination", RouteWeatherRequest{Origin: "a", Destination: " "}, "destination is required"},
		{"bad time", RouteWeatherRequest{Origin: "a", Destination: "b", DepartureTime: strptr("tomorrow")}, "departure_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Validate()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
