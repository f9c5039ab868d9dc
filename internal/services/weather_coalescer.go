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

// MaxConcurrentWeatherCalls bounds in-flight weather provider calls per request.
const MaxConcurrentWeatherCalls = 5

type weatherResult struct {
	key         domain.WeatherKey
	observation *domain.WeatherObservation
	err         error
}

// WeatherCoalescer attaches weather to waypoints with one provider call per unique WeatherKey.
type WeatherCoalescer struct {
	provider ports.WeatherProvider
	limit    int
	log      *zap.Logger
	metrics  *metrics.Collector
}

func NewWeatherCoalescer(provider ports.WeatherProvider, log *zap.Logger, m *metrics.Collector) *WeatherCoalescer {
	return &WeatherCoalescer{
		provider: provider,
		limit:    MaxConcurrentWeatherCalls,
		log:      logger.OrNop(log),
		metrics:  m,
	}
}

// Attach fetches weather for every waypoint and sets Waypoint.Weather in place.
//
// Waypoints are grouped by WeatherKey and the first waypoint of each group is used as the
// representative for the lookup. A failed lookup leaves that group's weather nil and never
// affects other groups. Returns the number of unique keys looked up.
func (c *WeatherCoalescer) Attach(ctx context.Context, waypoints []*domain.Waypoint) int {
	groups := make(map[domain.WeatherKey][]*domain.Waypoint)
	order := make([]domain.WeatherKey, 0)
	for _, wp := range waypoints {
		k := wp.WeatherKey()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], wp)
	}

	c.metrics.Coalesced("weather", len(waypoints), len(order))
	if len(order) == 0 {
		return 0
	}

	sem := make(chan struct{}, c.limit)
	resultsCh := make(chan weatherResult, len(order))
	var wg sync.WaitGroup

	for _, k := range order {
		rep := groups[k][0]

		wg.Add(1)
		go func(key domain.WeatherKey, rep domain.Waypoint) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			o, err := c.fetch(ctx, rep)
			resultsCh <- weatherResult{key: key, observation: o, err: err}
		}(k, *rep)
	}

	wg.Wait()
	close(resultsCh)

	for res := range resultsCh {
		if res.err != nil {
			c.log.Warn("weather lookup failed",
				zap.Error(&domain.UpstreamDataError{Provider: "weather", Key: weatherKeyString(res.key), Err: res.err}),
				zap.Int("waypoints", len(groups[res.key])),
			)
			continue
		}

		for _, wp := range groups[res.key] {
			o := *res.observation
			wp.Weather = &o
		}
	}

	return len(order)
}

// fetch reads the representative's local day and picks its hour from the series.
func (c *WeatherCoalescer) fetch(ctx context.Context, rep domain.Waypoint) (*domain.WeatherObservation, error) {
	series, err := c.provider.HourlyForecast(ctx, rep.Location, rep.EstimatedTime)
	c.metrics.Upstream("weather", err)
	if err != nil {
		return nil, fmt.Errorf("hourly forecast: %w", err)
	}
	if series == nil {
		return nil, domain.ErrEmptySeries
	}

	o, err := series.At(rep.EstimatedTime.Hour())
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func weatherKeyString(k domain.WeatherKey) string {
	return fmt.Sprintf("%d,%d@%d", k.Lat, k.Lng, k.Hour)
}
