package ports

import (
	"context"
	"route-weather-service/internal/domain"
	"time"
)

// Contract for hourly forecasts.
type WeatherProvider interface {
	// Return the hourly series for the calendar day of `day` (in its own location) at point p.
	HourlyForecast(ctx context.Context, p domain.GeoPoint, day time.Time) (*domain.HourlySeries, error)
}
