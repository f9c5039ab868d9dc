package domain

// Represents a single step of a route leg as returned by the routing provider.
// Polyline holds the Google-encoded intermediate geometry of the step.
type RouteStep struct {
	DurationSeconds int
	DistanceMeters  int
	Start           GeoPoint
	End             GeoPoint
	Polyline        string
}

// Represents one driving alternative between an origin and a destination.
// Index identifies the alternative among the ones returned for the same request.
type Route struct {
	Index            int
	Summary          string
	OverviewPolyline string
	Steps            []RouteStep
}

func (r *Route) TotalDurationSeconds() int {
	total := 0
	for _, s := range r.Steps {
		total += s.DurationSeconds
	}
	return total
}

func (r *Route) TotalDistanceMeters() int {
	total := 0
	for _, s := range r.Steps {
		total += s.DistanceMeters
	}
	return total
}

// Total duration in whole minutes (floor).
func (r *Route) TotalDurationMinutes() int {
	return r.TotalDurationSeconds() / 60
}

// The routing provider's answer for one origin/destination pair.
type RouteSet struct {
	OriginAddress      string
	DestinationAddress string
	Routes             []Route
}
