package ports

import (
	"context"
	"route-weather-service/internal/domain"
)

// Opaque regression model: feature vector in, desirability estimate out (nominally 0-100).
type ScoringModel interface {
	Predict(ctx context.Context, features domain.FeatureVector) (float64, error)
}
