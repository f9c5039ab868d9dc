package services

import (
	"context"
	"fmt"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/logger"
	"route-weather-service/internal/platform/metrics"
	"route-weather-service/internal/ports"
	"sync"

	"go.uber.org/zap"
)

type placeResult struct {
	key   domain.PlaceKey
	label string
	err   error
}

// PlaceResolver turns coordinates into display names with one reverse-geocode call per PlaceKey.
// The optional cache is consulted before the provider and filled with successful lookups.
type PlaceResolver struct {
	provider ports.GeocodeProvider
	cache    ports.PlaceCache
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewPlaceResolver(provider ports.GeocodeProvider, cache ports.PlaceCache, log *zap.Logger, m *metrics.Collector) *PlaceResolver {
	return &PlaceResolver{provider: provider, cache: cache, log: logger.OrNop(log), metrics: m}
}

// Resolve returns a label for the PlaceKey of every point.
// Keys whose lookup failed map to domain.UnknownLocation.
func (r *PlaceResolver) Resolve(ctx context.Context, points []domain.GeoPoint) map[domain.PlaceKey]string {
	reps := make(map[domain.PlaceKey]domain.GeoPoint)
	keys := make([]domain.PlaceKey, 0)
	for _, p := range points {
		k := p.PlaceKey()
		if _, ok := reps[k]; ok {
			continue
		}
		reps[k] = p
		keys = append(keys, k)
	}

	out := make(map[domain.PlaceKey]string, len(keys))
	if len(keys) == 0 {
		return out
	}

	if r.cache != nil {
		cached, err := r.cache.GetMany(ctx, keys)
		if err != nil {
			r.log.Warn("place cache read failed", zap.Error(err))
		}
		for k, label := range cached {
			out[k] = label
		}
	}

	missing := make([]domain.PlaceKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := out[k]; !ok {
			missing = append(missing, k)
		}
	}
	r.metrics.Coalesced("geocode", len(points), len(missing))

	resultsCh := make(chan placeResult, len(missing))
	var wg sync.WaitGroup

	for _, k := range missing {
		wg.Add(1)
		go func(key domain.PlaceKey, p domain.GeoPoint) {
			defer wg.Done()

			place, err := r.provider.ReversePlace(ctx, p)
			r.metrics.Upstream("geocode", err)
			resultsCh <- placeResult{key: key, label: place.Label(), err: err}
		}(k, reps[k])
	}

	wg.Wait()
	close(resultsCh)

	fresh := make(map[domain.PlaceKey]string, len(missing))
	for res := range resultsCh {
		if res.err != nil {
			r.log.Warn("reverse geocode failed",
				zap.Error(&domain.UpstreamDataError{Provider: "geocode", Key: placeKeyString(res.key), Err: res.err}),
			)
			out[res.key] = domain.UnknownLocation
			continue
		}
		out[res.key] = res.label
		if res.label != domain.UnknownLocation {
			fresh[res.key] = res.label
		}
	}

	if r.cache != nil && len(fresh) > 0 {
		if err := r.cache.PutMany(ctx, fresh); err != nil {
			r.log.Warn("place cache write failed", zap.Error(err))
		}
	}

	return out
}

func placeKeyString(k domain.PlaceKey) string {
	return fmt.Sprintf("%d,%d", k.Lat, k.Lng)
}
