package ports

import (
	"context"
	"route-weather-service/internal/domain"
)

// Contract for reverse geocoding a point into a place name.
type GeocodeProvider interface {
	ReversePlace(ctx context.Context, p domain.GeoPoint) (domain.Place, error)
}

// Optional persistent store of resolved place labels keyed by rounded coordinates.
type PlaceCache interface {
	GetMany(ctx context.Context, keys []domain.PlaceKey) (map[domain.PlaceKey]string, error)
	PutMany(ctx context.Context, labels map[domain.PlaceKey]string) error
}
