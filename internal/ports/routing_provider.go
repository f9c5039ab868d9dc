package ports

import (
	"context"
	"route-weather-service/internal/domain"
)

// Contract for retrieving driving alternatives between two free-text locations.
type RoutingProvider interface {
	// Return one or more alternative routes. A non-success upstream status is
	// reported as *domain.RoutingError.
	Routes(ctx context.Context, origin string, destination string) (*domain.RouteSet, error)
}
