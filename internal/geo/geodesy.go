// Package geo provides the distance and interpolation primitives used by the waypoint sampler.
package geo

import (
	"math"
	"route-weather-service/internal/domain"
)

// EarthRadiusM is the mean radius of Earth in meters.
const EarthRadiusM = 6_371_000.0

// Distance returns the great-circle distance between two points in meters (haversine).
func Distance(a, b domain.GeoPoint) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := lat2 - lat1
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return EarthRadiusM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Interpolate moves linearly from a to b, latitude and longitude independently.
// Callers clamp fraction to [0, 1]; 0 yields a and 1 yields b exactly.
//
// This is not geodesically exact but is adequate over a 15-minute driving segment.
func Interpolate(a, b domain.GeoPoint, fraction float64) domain.GeoPoint {
	switch fraction {
	case 0:
		return a
	case 1:
		return b
	}
	return domain.GeoPoint{
		Lat: a.Lat + (b.Lat-a.Lat)*fraction,
		Lng: a.Lng + (b.Lng-a.Lng)*fraction,
	}
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
