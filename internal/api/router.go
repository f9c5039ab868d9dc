package api

import (
	"net/http"
	"route-weather-service/internal/api/handlers"
	"route-weather-service/internal/platform/logger"
	"route-weather-service/internal/platform/metrics"

	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// /metrics is only served when m is non-nil.
func NewRouter(rec handlers.RouteRecommender, m *metrics.Collector, frontendOrigin string, log *zap.Logger) http.Handler {
	log = logger.OrNop(log)
	mux := http.NewServeMux()

	rwHandler := &handlers.RouteWeatherHandler{Recommender: rec, Log: log}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/route-weather", rwHandler.Recommend)
	if m != nil {
		mux.Handle("/metrics", m.Handler())
	}

	return requestIDMiddleware(loggingMiddleware(log, corsMiddleware(frontendOrigin, mux)))
}
