package domain

import (
	"errors"
	"fmt"
)

// Weather at one place and hour. Values are immutable once constructed.
type WeatherObservation struct {
	TemperatureC         float64 `json:"temperature_c"`
	ApparentTemperatureC float64 `json:"apparent_temperature_c"`
	PrecipitationMM      float64 `json:"precipitation_mm"`
	PrecipitationProb    int     `json:"precipitation_probability"`
	WeatherCode          int     `json:"weather_code"`
	Description          string  `json:"weather_description"`
	WindSpeedKMH         float64 `json:"wind_speed_kmh"`
	HumidityPercent      int     `json:"humidity_percent"`
}

// HourlySeries is the per-hour forecast for one calendar day at one point.
// All slices are indexed by local hour (0-23) and have the same length.
type HourlySeries struct {
	Time                []string
	Temperature         []float64
	ApparentTemperature []float64
	Precipitation       []float64
	PrecipitationProb   []int
	WeatherCode         []int
	WindSpeed           []float64
	Humidity            []int
}

var ErrEmptySeries = errors.New("hourly series is empty")

// At returns the observation for the nearest available hour: min(hour, len-1).
func (s *HourlySeries) At(hour int) (WeatherObservation, error) {
	n := len(s.Time)
	if n == 0 {
		return WeatherObservation{}, ErrEmptySeries
	}

	idx := min(hour, n-1)
	if idx < 0 {
		idx = 0
	}

	for name, l := range map[string]int{
		"temperature_2m":            len(s.Temperature),
		"apparent_temperature":      len(s.ApparentTemperature),
		"precipitation":             len(s.Precipitation),
		"precipitation_probability": len(s.PrecipitationProb),
		"weather_code":              len(s.WeatherCode),
		"wind_speed_10m":            len(s.WindSpeed),
		"relative_humidity_2m":      len(s.Humidity),
	} {
		if l <= idx {
			return WeatherObservation{}, fmt.Errorf("hourly series: %s has %d values, need index %d", name, l, idx)
		}
	}

	code := s.WeatherCode[idx]
	return WeatherObservation{
		TemperatureC:         s.Temperature[idx],
		ApparentTemperatureC: s.ApparentTemperature[idx],
		PrecipitationMM:      s.Precipitation[idx],
		PrecipitationProb:    s.PrecipitationProb[idx],
		WeatherCode:          code,
		Description:          ConditionDescription(code),
		WindSpeedKMH:         s.WindSpeed[idx],
		HumidityPercent:      s.Humidity[idx],
	}, nil
}

// WMO weather interpretation codes.
var conditionDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

func ConditionDescription(code int) string {
	if d, ok := conditionDescriptions[code]; ok {
		return d
	}
	return "Unknown"
}

// Normalized hazard intensity per WMO code (0.0 benign, 1.0 extreme).
var conditionSeverity = map[int]float64{
	0:  0.0,
	1:  0.02,
	2:  0.05,
	3:  0.08,
	45: 0.15,
	48: 0.20,
	51: 0.10,
	53: 0.20,
	55: 0.30,
	56: 0.40,
	57: 0.55,
	61: 0.20,
	63: 0.40,
	65: 0.70,
	66: 0.60,
	67: 0.80,
	71: 0.35,
	73: 0.55,
	75: 0.80,
	77: 0.40,
	80: 0.25,
	81: 0.45,
	82: 0.75,
	85: 0.40,
	86: 0.75,
	95: 0.85,
	96: 0.95,
	99: 1.0,
}

// DefaultConditionSeverity applies to codes missing from the table.
const DefaultConditionSeverity = 0.5

func ConditionSeverity(code int) float64 {
	if s, ok := conditionSeverity[code]; ok {
		return s
	}
	return DefaultConditionSeverity
}

// Codes at or above this value belong to the rain/snow/storm family.
const AdverseConditionCode = 61

func (w WeatherObservation) IsAdverse() bool {
	return w.WeatherCode >= AdverseConditionCode
}
