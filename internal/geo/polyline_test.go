package geo

import (
	"route-weather-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePolylineKnownValue(t *testing.T) {
	// Example from Google's polyline algorithm documentation.
	points, err := DecodePolyline("_p~iF~ps|U_ulLnnqC_mqNvxq`@")
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Lat, 1e-9)
	assert.InDelta(t, -120.2, points[0].Lng, 1e-9)
	assert.InDelta(t, 40.7, points[1].Lat, 1e-9)
	assert.InDelta(t, -120.95, points[1].Lng, 1e-9)
	assert.InDelta(t, 43.252, points[2].Lat, 1e-9)
	assert.InDelta(t, -126.453, points[2].Lng, 1e-9)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := []domain.GeoPoint{{Lat: 37.7749, Lng: -122.4194}, {Lat: 34.0522, Lng: -118.2437}}

	out, err := DecodePolyline(EncodePolyline(in))
	require.NoError(t, err)

	require.Len(t, out, 2)
	for i := range in {
		assert.InDelta(t, in[i].Lat, out[i].Lat, 1e-5)
		assert.InDelta(t, in[i].Lng, out[i].Lng, 1e-5)
	}
}

func TestBoundsOf(t *testing.T) {
	assert.Nil(t, BoundsOf(nil))

	b := BoundsOf([]domain.GeoPoint{{Lat: 37.77, Lng: -122.42}, {Lat: 34.05, Lng: -118.24}, {Lat: 36.0, Lng: -120.0}})
	require.NotNil(t, b)
	assert.Equal(t, domain.Bounds{South: 34.05, West: -122.42, North: 37.77, East: -118.24}, *b)
}
