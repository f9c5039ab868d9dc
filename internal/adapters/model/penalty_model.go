package model

import (
	"context"
	"route-weather-service/internal/domain"
)

// PenaltyModel scores a route as 100 minus weighted penalties for extra duration and
// adverse weather. It is deterministic and runs in process.
//
// Predictions are not clipped; callers clip to [0, 100].
type PenaltyModel struct{}

func NewPenaltyModel() *PenaltyModel { return &PenaltyModel{} }

func (PenaltyModel) Predict(_ context.Context, f domain.FeatureVector) (float64, error) {
	duration := (f[domain.FeatureDurationRatio] - 1) * 60
	weather := f[domain.FeatureAvgWeatherSeverity] * 25

	extreme := 0.0
	if maxSev := f[domain.FeatureMaxWeatherSeverity]; maxSev > 0.7 {
		extreme = (maxSev - 0.7) * 30
	}

	wind := 0.0
	if avgWind := f[domain.FeatureAvgWindSpeed]; avgWind > 50 {
		wind = (avgWind - 50) / 50 * 10
	}

	precip := f[domain.FeatureAvgPrecipitation]
	adverse := f[domain.FeaturePctAdverseWaypoints] * 15

	return 100 - duration - weather - extreme - wind - precip - adverse, nil
}
