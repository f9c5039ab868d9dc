package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"route-weather-service/internal/adapters/cache"
	"route-weather-service/internal/adapters/events"
	"route-weather-service/internal/adapters/googlemaps"
	"route-weather-service/internal/adapters/model"
	"route-weather-service/internal/adapters/openmeteo"
	"route-weather-service/internal/api"
	"route-weather-service/internal/config"
	"route-weather-service/internal/platform/db"
	"route-weather-service/internal/platform/logger"
	"route-weather-service/internal/platform/metrics"
	"route-weather-service/internal/ports"
	"route-weather-service/internal/services"
	"strconv"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Google Maps, Open-Meteo, caches, NATS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "route-weather-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var m *metrics.Collector
	if !cfg.DisableMetrics {
		m = metrics.NewCollector()
	}

	// Upstream clients share one pool; the timeout bounds a single provider call.
	httpClient := &http.Client{Timeout: 15 * time.Second}

	gmaps, err := googlemaps.NewClient(cfg.GoogleMapsAPIKey, googlemaps.WithHTTPClient(httpClient))
	if err != nil {
		log.Fatal("failed to create google maps client", zap.Error(err))
	}
	weather := openmeteo.NewForecastProvider(cfg.WeatherBaseURL, httpClient)

	scoring, err := newScoringModel(cfg.ModelURL, httpClient)
	if err != nil {
		log.Fatal("failed to create scoring model", zap.Error(err))
	}

	responseCache, err := newResponseCache(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to create response cache", zap.Error(err))
	}
	defer func() { _ = responseCache.Close() }()

	deps := services.RecommenderDeps{
		Routing:  gmaps,
		Weather:  weather,
		Geocoder: gmaps,
		Model:    scoring,
		Cache:    responseCache,
		Logger:   log,
		Metrics:  m,
	}

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer sqlDB.Close()

		if err := cache.InitSchema(ctx, sqlDB); err != nil {
			log.Fatal("failed to initialize place cache schema", zap.Error(err))
		}
		deps.PlaceCache = cache.NewSQLPlaceCache(sqlDB, cfg.PlaceCacheMaxAge)
		log.Info("place cache enabled")
	}

	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject, log)
		if err != nil {
			log.Fatal("failed to connect to nats", zap.Error(err))
		}
		defer pub.Close()

		deps.Publisher = pub
		log.Info("recommendation events enabled", zap.String("subject", cfg.NATSSubject))
	}

	rec := services.NewRecommender(deps)
	router := api.NewRouter(rec, m, cfg.FrontendOrigin, log)

	// Timeouts are tuned for cold-cache requests (several upstream round trips).
	addr := ":" + strconv.Itoa(cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down route-weather-server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("route-weather-server stopped")
}

func newScoringModel(modelURL string, client *http.Client) (ports.ScoringModel, error) {
	if modelURL == "" {
		return model.NewPenaltyModel(), nil
	}
	remote, err := model.NewRemoteModel(modelURL, client)
	if err != nil {
		return nil, err
	}
	return remote, nil
}

func newResponseCache(ctx context.Context, cfg *config.Options, log *zap.Logger) (ports.ResponseCache, error) {
	if cfg.RedisURL != "" {
		log.Info("response cache backend", zap.String("backend", "redis"))
		rc, err := cache.NewRedisResponseCache(ctx, cfg.RedisURL, cfg.CacheTTL, log)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	log.Info("response cache backend", zap.String("backend", "memory"), zap.Int("capacity", cfg.CacheCapacity))
	return cache.NewMemoryResponseCache(cfg.CacheTTL, cfg.CacheCapacity), nil
}
