package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"route-weather-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPenaltyModelIdealRoute(t *testing.T) {
	var f domain.FeatureVector
	f[domain.FeatureDurationRatio] = 1

	got, err := NewPenaltyModel().Predict(context.Background(), f)
	require.NoError(t, err)
	assert.InDelta(t, 100, got, 1e-9)
}

func TestPenaltyModelPenalties(t *testing.T) {
	var f domain.FeatureVector
	// Penalties: duration 30, severity 10, extreme 6, wind 5, precipitation 2, adverse 3.
	f[domain.FeatureDurationRatio] = 1.5
	f[domain.FeatureAvgWeatherSeverity] = 0.4
	f[domain.FeatureMaxWeatherSeverity] = 0.9
	f[domain.FeatureAvgWindSpeed] = 75
	f[domain.FeatureAvgPrecipitation] = 2
	f[domain.FeaturePctAdverseWaypoints] = 0.2

	got, err := NewPenaltyModel().Predict(context.Background(), f)
	require.NoError(t, err)
	assert.InDelta(t, 44, got, 1e-9)
}

func TestPenaltyModelPrefersFastClearRoute(t *testing.T) {
	var fast, stormy domain.FeatureVector
	fast[domain.FeatureDurationRatio] = 1
	stormy[domain.FeatureDurationRatio] = 1.3
	stormy[domain.FeatureAvgWeatherSeverity] = 0.85
	stormy[domain.FeatureMaxWeatherSeverity] = 0.85
	stormy[domain.FeaturePctAdverseWaypoints] = 1

	m := NewPenaltyModel()
	a, _ := m.Predict(context.Background(), fast)
	b, _ := m.Predict(context.Background(), stormy)
	assert.Greater(t, a, b)
}

func TestRemoteModelPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req predictRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Len(t, req.Features, domain.FeatureCount)
		assert.Equal(t, "duration_ratio", req.Names[0])
		assert.InDelta(t, 1.25, req.Features[0], 1e-9)

		_, _ = w.Write([]byte(`{"score": 73.5}`))
	}))
	defer srv.Close()

	m, err := NewRemoteModel(srv.URL, srv.Client())
	require.NoError(t, err)

	var f domain.FeatureVector
	f[domain.FeatureDurationRatio] = 1.25

	got, err := m.Predict(context.Background(), f)
	require.NoError(t, err)
	assert.InDelta(t, 73.5, got, 1e-9)
}

func TestRemoteModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, "boom"},
		{"missing score", http.StatusOK, `{}`},
		{"bad json", http.StatusOK, `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			m, err := NewRemoteModel(srv.URL, srv.Client())
			require.NoError(t, err)

			_, err = m.Predict(context.Background(), domain.FeatureVector{})
			assert.Error(t, err)
		})
	}
}

func TestNewRemoteModelRequiresURL(t *testing.T) {
	_, err := NewRemoteModel(" ", nil)
	assert.Error(t, err)
}
