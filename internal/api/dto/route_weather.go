package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Accepted layouts for departure_time. Times without an offset are read as UTC.
var departureLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type RouteWeatherRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureTime *string `json:"departure_time"`
}

// Validate trims the endpoints and parses the optional departure time.
func (r *RouteWeatherRequest) Validate() (*time.Time, error) {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)

	if r.Origin == "" {
		return nil, errors.New("origin is required")
	}
	if r.Destination == "" {
		return nil, errors.New("destination is required")
	}

	if r.DepartureTime == nil || strings.TrimSpace(*r.DepartureTime) == "" {
		return nil, nil
	}

	raw := strings.TrimSpace(*r.DepartureTime)
	for _, layout := range departureLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("departure_time %q is not an ISO-8601 timestamp", raw)
}
