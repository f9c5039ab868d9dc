package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/obs"
	"strings"
	"time"
)

type predictRequest struct {
	Features []float64 `json:"features"`
	Names    []string  `json:"names"`
}

type predictResponse struct {
	Score *float64 `json:"score"`
}

// RemoteModel delegates predictions to an HTTP scoring service.
//
// Request:  POST {url} {"features": [...9 floats], "names": [...]}
// Response: {"score": 87.5}
type RemoteModel struct {
	url     string
	session *http.Client
}

func NewRemoteModel(url string, client *http.Client) (*RemoteModel, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("remote model: url must be non-empty")
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RemoteModel{url: url, session: client}, nil
}

func (m *RemoteModel) Predict(ctx context.Context, f domain.FeatureVector) (_ float64, err error) {
	defer obs.Time(ctx, "model.Predict")(&err)

	body, err := json.Marshal(predictRequest{Features: f[:], Names: domain.FeatureNames[:]})
	if err != nil {
		return 0, fmt.Errorf("predict: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("predict: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.session.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predict: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return 0, fmt.Errorf("predict: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("predict: decode response: %w", err)
	}
	if decoded.Score == nil {
		return 0, errors.New("predict: response has no score")
	}

	return *decoded.Score, nil
}
