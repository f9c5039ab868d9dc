package domain

import "math"

// Immutable geographic point (latitude, longitude) in WGS-84 degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Return the point as [lat, lng], the order used by encoded polylines.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Lat, p.Lng} }

// Bounding box of a set of points.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// roundTo2 scales a coordinate to hundredths of a degree (~1.1 km) for use in dedup keys.
func roundTo2(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Coalescing key for reverse-geocode lookups: coordinates rounded to 2 decimals.
type PlaceKey struct {
	Lat int64
	Lng int64
}

func (p GeoPoint) PlaceKey() PlaceKey {
	return PlaceKey{Lat: roundTo2(p.Lat), Lng: roundTo2(p.Lng)}
}
