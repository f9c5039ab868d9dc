package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks requests the pipeline cannot act on (empty route set, blank origin).
var ErrInvalidInput = errors.New("invalid input")

// RoutingError is returned when the routing provider answers with a non-success status.
// It is surfaced to clients and never retried.
type RoutingError struct {
	Status string
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("Directions API error: %s", e.Status)
}

// UpstreamDataError reports a failed weather or geocode lookup for one dedup key.
// Consumers of that key proceed without data.
type UpstreamDataError struct {
	Provider string
	Key      string
	Err      error
}

func (e *UpstreamDataError) Error() string {
	return fmt.Sprintf("%s lookup %s: %v", e.Provider, e.Key, e.Err)
}

func (e *UpstreamDataError) Unwrap() error { return e.Err }
