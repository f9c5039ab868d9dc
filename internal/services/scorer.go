package services

import (
	"context"
	"fmt"
	"math"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/metrics"
	"route-weather-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Scorer ranks weather-annotated route alternatives with an opaque scoring model
// and attaches hazard advisories to each of them.
type Scorer struct {
	model   ports.ScoringModel
	places  placeNamer
	metrics *metrics.Collector
}

func NewScorer(model ports.ScoringModel, places *PlaceResolver, m *metrics.Collector) *Scorer {
	s := &Scorer{model: model, metrics: m}
	if places != nil {
		s.places = places
	}
	return s
}

// ScoreRoutes scores every route and selects the recommended one.
//
// The recommended route has the highest raw model score; the first one wins ties.
// Advisories are collected concurrently with scoring and indexed like routes.
func (s *Scorer) ScoreRoutes(ctx context.Context, routes []domain.RouteWithWeather) (*domain.Recommendation, error) {
	if len(routes) == 0 {
		return nil, fmt.Errorf("score routes: no routes to score: %w", domain.ErrInvalidInput)
	}

	minDuration := routes[0].TotalDurationMinutes
	for _, r := range routes[1:] {
		minDuration = min(minDuration, r.TotalDurationMinutes)
	}

	features := make([]domain.FeatureVector, len(routes))
	for i := range routes {
		features[i] = ExtractFeatures(&routes[i], minDuration)
	}

	var (
		raw        = make([]float64, len(routes))
		advisories [][]domain.Advisory
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		advisories = CollectAdvisories(gctx, routes, s.places)
		return nil
	})

	g.Go(func() error {
		for i, f := range features {
			score, err := s.model.Predict(gctx, f)
			s.metrics.Upstream("model", err)
			if err != nil {
				return fmt.Errorf("score routes: predict route %d: %w", routes[i].RouteIndex, err)
			}
			raw[i] = score
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	scores := make([]domain.RouteScore, len(routes))
	best := 0
	for i := range routes {
		durationScore := round1(100 / math.Max(features[i][domain.FeatureDurationRatio], 0.01))
		weatherScore := round1((1 - features[i][domain.FeatureAvgWeatherSeverity]) * 100)

		scores[i] = domain.RouteScore{
			OverallScore:         round1(clip(raw[i], 0, 100)),
			DurationScore:        math.Min(durationScore, 100),
			WeatherScore:         math.Min(weatherScore, 100),
			RecommendationReason: recommendationReason(routes[i].TotalDurationMinutes, minDuration, weatherScore),
		}

		if raw[i] > raw[best] {
			best = i
		}
	}

	return &domain.Recommendation{
		RecommendedRouteIndex: routes[best].RouteIndex,
		Scores:                scores,
		Advisories:            advisories,
	}, nil
}

func recommendationReason(durationMinutes, minDuration int, weatherScore float64) string {
	duration := "Fastest route"
	if durationMinutes > minDuration {
		duration = fmt.Sprintf("%d min longer than fastest", durationMinutes-minDuration)
	}

	var weather string
	switch {
	case weatherScore >= 80:
		weather = "mostly clear weather"
	case weatherScore >= 60:
		weather = "fair weather conditions"
	case weatherScore >= 40:
		weather = "some adverse weather"
	default:
		weather = "poor weather conditions"
	}

	return duration + " with " + weather
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
