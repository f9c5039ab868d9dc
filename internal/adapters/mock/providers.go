// Package mock provides in-memory providers for tests and offline runs.
package mock

import (
	"context"
	"fmt"
	"route-weather-service/internal/domain"
	"sync"
	"sync/atomic"
	"time"
)

type RoutingProvider struct {
	m     map[string]*domain.RouteSet
	calls atomic.Int64
}

// NewRoutingProvider serves the given route sets keyed by "origin|destination".
func NewRoutingProvider(sets map[string]*domain.RouteSet) *RoutingProvider {
	return &RoutingProvider{m: sets}
}

func (p *RoutingProvider) Routes(ctx context.Context, origin, destination string) (*domain.RouteSet, error) {
	p.calls.Add(1)

	set, ok := p.m[origin+"|"+destination]
	if !ok {
		return nil, &domain.RoutingError{Status: "NOT_FOUND"}
	}
	return set, nil
}

func (p *RoutingProvider) Calls() int { return int(p.calls.Load()) }

// WeatherProvider returns a flat 24-hour series per rounded location.
// Locations without an entry get Default; locations listed in Fail return an error.
type WeatherProvider struct {
	Default domain.WeatherObservation
	ByPlace map[domain.PlaceKey]domain.WeatherObservation
	Fail    map[domain.PlaceKey]bool
	Delay   time.Duration

	mu       sync.Mutex
	calls    int
	inFlight int
	maxSeen  int
}

func (p *WeatherProvider) HourlyForecast(ctx context.Context, pt domain.GeoPoint, day time.Time) (*domain.HourlySeries, error) {
	p.mu.Lock()
	p.calls++
	p.inFlight++
	p.maxSeen = max(p.maxSeen, p.inFlight)
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	if p.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(p.Delay):
		}
	}

	k := pt.PlaceKey()
	if p.Fail[k] {
		return nil, fmt.Errorf("mock weather: no forecast for %v", k)
	}

	o, ok := p.ByPlace[k]
	if !ok {
		o = p.Default
	}
	return FlatSeries(day, o), nil
}

func (p *WeatherProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// MaxConcurrent reports the highest number of simultaneous calls observed.
func (p *WeatherProvider) MaxConcurrent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxSeen
}

// FlatSeries builds a 24-hour series repeating o for the calendar day of day.
func FlatSeries(day time.Time, o domain.WeatherObservation) *domain.HourlySeries {
	s := &domain.HourlySeries{}
	for h := 0; h < 24; h++ {
		t := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
		s.Time = append(s.Time, t.Format("2006-01-02T15:04"))
		s.Temperature = append(s.Temperature, o.TemperatureC)
		s.ApparentTemperature = append(s.ApparentTemperature, o.ApparentTemperatureC)
		s.Precipitation = append(s.Precipitation, o.PrecipitationMM)
		s.PrecipitationProb = append(s.PrecipitationProb, o.PrecipitationProb)
		s.WeatherCode = append(s.WeatherCode, o.WeatherCode)
		s.WindSpeed = append(s.WindSpeed, o.WindSpeedKMH)
		s.Humidity = append(s.Humidity, o.HumidityPercent)
	}
	return s
}

// GeocodeProvider resolves rounded locations from a fixed table.
type GeocodeProvider struct {
	Places map[domain.PlaceKey]domain.Place
	Fail   map[domain.PlaceKey]bool

	calls atomic.Int64
}

func (p *GeocodeProvider) ReversePlace(ctx context.Context, pt domain.GeoPoint) (domain.Place, error) {
	p.calls.Add(1)

	k := pt.PlaceKey()
	if p.Fail[k] {
		return domain.Place{}, fmt.Errorf("mock geocode: lookup failed for %v", k)
	}
	return p.Places[k], nil
}

func (p *GeocodeProvider) Calls() int { return int(p.calls.Load()) }
