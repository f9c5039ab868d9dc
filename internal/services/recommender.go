package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/geo"
	"route-weather-service/internal/platform/logger"
	"route-weather-service/internal/platform/metrics"
	"route-weather-service/internal/platform/obs"
	"route-weather-service/internal/ports"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// RecommenderDeps wires the pipeline's collaborators. Cache, PlaceCache and Publisher are optional.
type RecommenderDeps struct {
	Routing    ports.RoutingProvider
	Weather    ports.WeatherProvider
	Geocoder   ports.GeocodeProvider
	PlaceCache ports.PlaceCache
	Model      ports.ScoringModel
	Cache      ports.ResponseCache
	Publisher  ports.RecommendationPublisher
	Logger     *zap.Logger
	Metrics    *metrics.Collector

	// Now defaults to time.Now and is used when no departure time is given.
	Now func() time.Time

	// ComputeTimeout bounds one shared computation. Defaults to DefaultComputeTimeout.
	ComputeTimeout time.Duration
}

const DefaultComputeTimeout = 60 * time.Second

// Recommender is the route-weather pipeline entry point.
type Recommender struct {
	routing   ports.RoutingProvider
	weather   *WeatherCoalescer
	scorer    *Scorer
	cache     ports.ResponseCache
	publisher ports.RecommendationPublisher
	log       *zap.Logger
	metrics   *metrics.Collector
	now       func() time.Time
	timeout   time.Duration

	inflight singleflight.Group
}

func NewRecommender(d RecommenderDeps) *Recommender {
	log := logger.OrNop(d.Logger)
	now := d.Now
	if now == nil {
		now = time.Now
	}

	timeout := d.ComputeTimeout
	if timeout <= 0 {
		timeout = DefaultComputeTimeout
	}

	places := NewPlaceResolver(d.Geocoder, d.PlaceCache, log, d.Metrics)

	return &Recommender{
		routing:   d.Routing,
		weather:   NewWeatherCoalescer(d.Weather, log, d.Metrics),
		scorer:    NewScorer(d.Model, places, d.Metrics),
		cache:     d.Cache,
		publisher: d.Publisher,
		log:       log,
		metrics:   d.Metrics,
		now:       now,
		timeout:   timeout,
	}
}

// GetRouteRecommendation returns weather-annotated, scored alternatives between origin and destination.
//
// Identical requests (see CacheKey) are served from the response cache while fresh, and
// concurrent identical misses share one computation.
func (r *Recommender) GetRouteRecommendation(
	ctx context.Context,
	origin string,
	destination string,
	departAt *time.Time,
) (_ *domain.RouteWeatherReport, err error) {
	defer obs.Time(ctx, "recommender.GetRouteRecommendation")(&err)

	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, fmt.Errorf("get route recommendation: origin and destination must be non-empty: %w", domain.ErrInvalidInput)
	}
	r.metrics.Request()

	key := CacheKey(origin, destination, departAt)

	if r.cache != nil {
		if payload, ok := r.cache.Get(ctx, key); ok {
			var report domain.RouteWeatherReport
			if err := json.Unmarshal(payload, &report); err == nil {
				r.metrics.CacheLookup(true)
				return &report, nil
			}
			r.log.Warn("discarding undecodable cache entry", zap.String("key", key))
		}
		r.metrics.CacheLookup(false)
	}

	// The shared computation outlives any single caller; each caller stops waiting on its own ctx.
	ch := r.inflight.DoChan(key, func() (any, error) {
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.compute(cctx, key, origin, destination, departAt)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RouteWeatherReport), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("get route recommendation: %w", ctx.Err())
	}
}

func (r *Recommender) compute(
	ctx context.Context,
	key string,
	origin string,
	destination string,
	departAt *time.Time,
) (*domain.RouteWeatherReport, error) {
	start := time.Now()

	departure := r.now()
	if departAt != nil {
		departure = *departAt
	}

	set, err := r.routing.Routes(ctx, origin, destination)
	r.metrics.Upstream("directions", err)
	if err != nil {
		return nil, fmt.Errorf("get route recommendation: get routes: %w", err)
	}
	if set == nil || len(set.Routes) == 0 {
		return nil, fmt.Errorf("get route recommendation: no routes returned: %w", domain.ErrInvalidInput)
	}

	routes, err := sampleRoutes(set.Routes, departure)
	if err != nil {
		return nil, fmt.Errorf("get route recommendation: %w", err)
	}

	// Weather must be complete for every route before scoring starts.
	var all []*domain.Waypoint
	for i := range routes {
		for j := range routes[i].Waypoints {
			all = append(all, &routes[i].Waypoints[j])
		}
	}
	unique := r.weather.Attach(ctx, all)
	r.log.Debug("weather attached",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int("waypoints", len(all)),
		zap.Int("unique_keys", unique),
	)

	rec, err := r.scorer.ScoreRoutes(ctx, routes)
	if err != nil {
		return nil, fmt.Errorf("get route recommendation: %w", err)
	}

	report := &domain.RouteWeatherReport{
		OriginAddress:      set.OriginAddress,
		DestinationAddress: set.DestinationAddress,
		Routes:             routes,
		Recommendation:     rec,
	}

	if r.cache != nil {
		payload, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("get route recommendation: encode report: %w", err)
		}
		r.cache.Set(ctx, key, payload)
	}

	if r.publisher != nil {
		err := r.publisher.PublishRecommendation(ctx, origin, destination, report)
		r.metrics.Published(err)
		if err != nil {
			r.log.Warn("publish recommendation failed", zap.Error(err))
		}
	}

	r.metrics.ObservePipeline(time.Since(start))
	return report, nil
}

// sampleRoutes samples every alternative in parallel and returns them in input order.
func sampleRoutes(in []domain.Route, departure time.Time) ([]domain.RouteWithWeather, error) {
	out := make([]domain.RouteWithWeather, len(in))

	var g errgroup.Group
	for i := range in {
		g.Go(func() error {
			route := &in[i]

			wps, err := SampleWaypoints(route.Steps, departure)
			if err != nil {
				return fmt.Errorf("sample route %d: %w", route.Index, err)
			}

			var bounds *domain.Bounds
			if overview, err := geo.DecodePolyline(route.OverviewPolyline); err == nil {
				bounds = geo.BoundsOf(overview)
			}

			out[i] = domain.RouteWithWeather{
				RouteIndex:           route.Index,
				OverviewPolyline:     route.OverviewPolyline,
				Summary:              route.Summary,
				TotalDurationMinutes: route.TotalDurationMinutes(),
				TotalDistanceKM:      math.Round(float64(route.TotalDistanceMeters())/100) / 10,
				Bounds:               bounds,
				Waypoints:            wps,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
