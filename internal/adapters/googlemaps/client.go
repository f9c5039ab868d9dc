// Package googlemaps implements the routing and reverse-geocoding providers on the
// Google Maps Directions and Geocoding web services.
package googlemaps

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://maps.googleapis.com/maps/api"

// Client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
}

type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.session = h }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	c := &Client{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
