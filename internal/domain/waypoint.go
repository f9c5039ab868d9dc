package domain

import "time"

// A timed, located sample point along a route.
// Weather is nil until the fetch layer attaches an observation and is never changed afterwards.
type Waypoint struct {
	Location         GeoPoint            `json:"location"`
	MinutesFromStart int                 `json:"minutes_from_start"`
	EstimatedTime    time.Time           `json:"estimated_time"`
	Weather          *WeatherObservation `json:"weather,omitempty"`
}

// Coalescing key for weather lookups: coordinates rounded to 2 decimals and the
// estimated time truncated to the hour in its own location.
type WeatherKey struct {
	Lat  int64
	Lng  int64
	Hour int64
}

func (w Waypoint) WeatherKey() WeatherKey {
	t := w.EstimatedTime
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return WeatherKey{
		Lat:  roundTo2(w.Location.Lat),
		Lng:  roundTo2(w.Location.Lng),
		Hour: hour.Unix(),
	}
}
