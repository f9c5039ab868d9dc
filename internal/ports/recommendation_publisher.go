package ports

import (
	"context"
	"route-weather-service/internal/domain"
)

// Optional sink notified once per freshly computed report.
type RecommendationPublisher interface {
	PublishRecommendation(ctx context.Context, origin, destination string, report *domain.RouteWeatherReport) error
}
