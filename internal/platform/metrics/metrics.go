package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the service's Prometheus instruments on a private registry.
// All helper methods are safe on a nil *Collector so callers may run without metrics.
type Collector struct {
	reg *prometheus.Registry

	UpstreamCalls *prometheus.CounterVec // provider label: directions|weather|geocode|model, outcome: ok|error

	CacheLookups *prometheus.CounterVec // result label: hit|miss

	SampledWaypoints prometheus.Counter
	WeatherKeys      prometheus.Counter
	PlaceKeys        prometheus.Counter

	EventsPublished   prometheus.Counter
	EventPublishErrs  prometheus.Counter
	PipelineDuration  prometheus.Histogram
	RecommendationsIn prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_weather_upstream_calls_total",
			Help: "External provider calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "route_weather_response_cache_lookups_total",
			Help: "Response cache lookups by result.",
		}, []string{"result"}),
		SampledWaypoints: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_weather_sampled_waypoints_total",
			Help: "Waypoints produced by the sampler.",
		}),
		WeatherKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_weather_weather_keys_total",
			Help: "Unique weather lookups after coalescing.",
		}),
		PlaceKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_weather_place_keys_total",
			Help: "Unique reverse-geocode lookups after coalescing.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_weather_events_published_total",
			Help: "Recommendation events published.",
		}),
		EventPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_weather_event_publish_errors_total",
			Help: "Recommendation event publish errors.",
		}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "route_weather_pipeline_duration_seconds",
			Help:    "Duration of uncached recommendation computations.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		RecommendationsIn: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "route_weather_requests_total",
			Help: "Recommendation requests received.",
		}),
	}

	reg.MustRegister(
		c.UpstreamCalls, c.CacheLookups,
		c.SampledWaypoints, c.WeatherKeys, c.PlaceKeys,
		c.EventsPublished, c.EventPublishErrs,
		c.PipelineDuration, c.RecommendationsIn,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) Upstream(provider string, err error) {
	if c == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.UpstreamCalls.WithLabelValues(provider, outcome).Inc()
}

func (c *Collector) CacheLookup(hit bool) {
	if c == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheLookups.WithLabelValues(result).Inc()
}

// Coalesced records how many lookups were requested and how many unique keys were actually fetched.
func (c *Collector) Coalesced(kind string, requested, unique int) {
	if c == nil {
		return
	}
	switch kind {
	case "weather":
		c.SampledWaypoints.Add(float64(requested))
		c.WeatherKeys.Add(float64(unique))
	case "geocode":
		c.PlaceKeys.Add(float64(unique))
	}
}

func (c *Collector) Published(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.EventPublishErrs.Inc()
		return
	}
	c.EventsPublished.Inc()
}

func (c *Collector) Request() {
	if c == nil {
		return
	}
	c.RecommendationsIn.Inc()
}

func (c *Collector) ObservePipeline(d time.Duration) {
	if c == nil {
		return
	}
	c.PipelineDuration.Observe(d.Seconds())
}
