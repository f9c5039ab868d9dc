package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Options configures the HTTP server. Every option can be given as a flag or an environment variable.
type Options struct {
	Port   int    `short:"p" long:"port"    env:"PORT"    description:"Port to listen on"                     default:"8080"`
	AppEnv string `long:"app-env"           env:"APP_ENV" description:"development or production logging" default:"production"`

	GoogleMapsAPIKey string `long:"google-maps-api-key" env:"GOOGLE_MAPS_API_KEY" description:"Directions and Geocoding API key"`
	FrontendOrigin   string `long:"frontend-origin"     env:"FRONTEND_ORIGIN"     description:"Origin allowed by CORS" default:"http://localhost:5173"`
	WeatherBaseURL   string `long:"weather-base-url"    env:"WEATHER_BASE_URL"    description:"Open-Meteo API base URL" default:"https://api.open-meteo.com/v1"`

	CacheTTL      time.Duration `long:"cache-ttl"      env:"CACHE_TTL"      description:"Response cache entry lifetime"  default:"30m"`
	CacheCapacity int           `long:"cache-capacity" env:"CACHE_CAPACITY" description:"In-memory response cache size" default:"100"`
	RedisURL      string        `long:"redis-url"      env:"REDIS_URL"      description:"Use Redis as the response cache when set"`

	DatabaseURL      string        `long:"database-url"        env:"DATABASE_URL"        description:"Postgres URL for the place-name cache"`
	PlaceCacheMaxAge time.Duration `long:"place-cache-max-age" env:"PLACE_CACHE_MAX_AGE" description:"Age after which cached place names are refetched" default:"720h"`

	ModelURL    string `long:"model-url"    env:"MODEL_URL"    description:"Remote scoring model endpoint; the embedded model is used when empty"`
	NATSURL     string `long:"nats-url"     env:"NATS_URL"     description:"Publish recommendation events to NATS when set"`
	NATSSubject string `long:"nats-subject" env:"NATS_SUBJECT" description:"Subject prefix for recommendation events" default:"route-weather.recommendations"`

	DisableMetrics bool `long:"no-metrics" env:"DISABLE_METRICS" description:"Do not serve /metrics"`
}

// Load reads .env (when present) into the environment and parses args over it.
// A help request is returned as a *flags.Error of type flags.ErrHelp.
func Load(args []string) (*Options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load config: read .env: %w", err)
	}

	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &opts, nil
}

func (o *Options) validate() error {
	o.GoogleMapsAPIKey = strings.TrimSpace(o.GoogleMapsAPIKey)
	if o.GoogleMapsAPIKey == "" {
		return errors.New("GOOGLE_MAPS_API_KEY is required")
	}
	if o.Port < 1 || o.Port > 65535 {
		return fmt.Errorf("port %d out of range", o.Port)
	}
	if o.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", o.CacheTTL)
	}
	if o.CacheCapacity < 1 {
		return fmt.Errorf("cache capacity must be at least 1, got %d", o.CacheCapacity)
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
