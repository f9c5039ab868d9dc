package geo

import (
	"fmt"
	"route-weather-service/internal/domain"

	"github.com/paulmach/orb"
	"github.com/twpayne/go-polyline"
)

// DecodePolyline decodes a Google encoded polyline (precision 5) into points.
func DecodePolyline(encoded string) ([]domain.GeoPoint, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	points := make([]domain.GeoPoint, 0, len(coords))
	for _, c := range coords {
		points = append(points, domain.GeoPoint{Lat: c[0], Lng: c[1]})
	}
	return points, nil
}

func EncodePolyline(points []domain.GeoPoint) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.CoordsToList())
	}
	return string(polyline.EncodeCoords(coords))
}

// BoundsOf returns the bounding box of the points, or nil when there are none.
func BoundsOf(points []domain.GeoPoint) *domain.Bounds {
	if len(points) == 0 {
		return nil
	}

	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, orb.Point{p.Lng, p.Lat})
	}
	b := ls.Bound()

	return &domain.Bounds{
		South: b.Min.Lat(),
		West:  b.Min.Lon(),
		North: b.Max.Lat(),
		East:  b.Max.Lon(),
	}
}
