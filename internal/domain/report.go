package domain

// A route alternative annotated with sampled, weather-bearing waypoints.
type RouteWithWeather struct {
	RouteIndex           int        `json:"route_index"`
	OverviewPolyline     string     `json:"overview_polyline"`
	Summary              string     `json:"summary"`
	TotalDurationMinutes int        `json:"total_duration_minutes"`
	TotalDistanceKM      float64    `json:"total_distance_km"`
	Bounds               *Bounds    `json:"bounds,omitempty"`
	Waypoints            []Waypoint `json:"waypoints"`
}

// Pipeline output for one origin/destination request.
type RouteWeatherReport struct {
	OriginAddress      string             `json:"origin_address"`
	DestinationAddress string             `json:"destination_address"`
	Routes             []RouteWithWeather `json:"routes"`
	Recommendation     *Recommendation    `json:"recommendation,omitempty"`
}
