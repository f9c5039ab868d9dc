// Package openmeteo implements the hourly weather provider on the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/obs"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1"

var hourlyParams = []string{
	"temperature_2m",
	"apparent_temperature",
	"precipitation",
	"precipitation_probability",
	"weather_code",
	"wind_speed_10m",
	"relative_humidity_2m",
}

type forecastResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
	Hourly *struct {
		Time                     []string  `json:"time"`
		Temperature2m            []float64 `json:"temperature_2m"`
		ApparentTemperature      []float64 `json:"apparent_temperature"`
		Precipitation            []float64 `json:"precipitation"`
		PrecipitationProbability []int     `json:"precipitation_probability"`
		WeatherCode              []int     `json:"weather_code"`
		WindSpeed10m             []float64 `json:"wind_speed_10m"`
		RelativeHumidity2m       []int     `json:"relative_humidity_2m"`
	} `json:"hourly"`
}

// ForecastProvider is safe for concurrent use.
type ForecastProvider struct {
	session *http.Client
	baseURL string
}

func NewForecastProvider(baseURL string, client *http.Client) *ForecastProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &ForecastProvider{session: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// HourlyForecast returns the series for the calendar day of `day`. Times in the response are
// local to the point (timezone=auto), so index h is local hour h.
func (p *ForecastProvider) HourlyForecast(
	ctx context.Context,
	pt domain.GeoPoint,
	day time.Time,
) (_ *domain.HourlySeries, err error) {
	defer obs.Time(ctx, "openmeteo.HourlyForecast")(&err)

	date := day.Format("2006-01-02")

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(round4(pt.Lat), 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(round4(pt.Lng), 'f', -1, 64))
	params.Set("hourly", strings.Join(hourlyParams, ","))
	params.Set("start_date", date)
	params.Set("end_date", date)
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("hourly forecast: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hourly forecast: execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("hourly forecast: read response: %w", err)
	}

	var decoded forecastResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("hourly forecast: decode response (status %d): %w", resp.StatusCode, err)
	}

	if decoded.Error {
		return nil, fmt.Errorf("hourly forecast (%g, %g) on %s: %s", pt.Lat, pt.Lng, date, decoded.Reason)
	}
	if decoded.Hourly == nil {
		return nil, errors.New("hourly forecast: response has no hourly data")
	}

	h := decoded.Hourly
	return &domain.HourlySeries{
		Time:                h.Time,
		Temperature:         h.Temperature2m,
		ApparentTemperature: h.ApparentTemperature,
		Precipitation:       h.Precipitation,
		PrecipitationProb:   h.PrecipitationProbability,
		WeatherCode:         h.WeatherCode,
		WindSpeed:           h.WindSpeed10m,
		Humidity:            h.RelativeHumidity2m,
	}, nil
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
