package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"route-weather-service/internal/api/dto"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/logger"
	"route-weather-service/internal/platform/obs"
	"time"

	"go.uber.org/zap"
)

// RouteRecommender is the pipeline as seen by the HTTP layer.
type RouteRecommender interface {
	GetRouteRecommendation(ctx context.Context, origin, destination string, departAt *time.Time) (*domain.RouteWeatherReport, error)
}

// Bodies larger than this are rejected as invalid JSON.
const maxRequestBody = 64 << 10

type RouteWeatherHandler struct {
	Recommender RouteRecommender
	Log         *zap.Logger
}

// Recommend runs the route-weather pipeline for one origin/destination pair.
func (h *RouteWeatherHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteWeatherRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	departAt, err := req.Validate()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Recommender.GetRouteRecommendation(r.Context(), req.Origin, req.Destination, departAt)
	if err != nil {
		var routingErr *domain.RoutingError
		switch {
		case errors.As(err, &routingErr):
			writeError(w, r, http.StatusBadRequest, routingErr.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, r, http.StatusBadRequest, "no usable route between origin and destination")
		default:
			logger.OrNop(h.Log).Error("route recommendation failed",
				zap.String("req_id", obs.RequestID(r.Context())),
				zap.Error(err),
			)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, report)
}
