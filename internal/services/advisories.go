package services

import (
	"context"
	"fmt"
	"math"
	"route-weather-service/internal/domain"
	"slices"
	"strings"
)

// advisoryRule is one row of the hazard table. Templates use {loc} for the place name
// and {wind} for the rounded wind speed.
type advisoryRule struct {
	Type     string
	Severity domain.AdvisorySeverity
	Match    func(w *domain.WeatherObservation) bool
	Template string
}

func codeIn(codes ...int) func(w *domain.WeatherObservation) bool {
	return func(w *domain.WeatherObservation) bool {
		return slices.Contains(codes, w.WeatherCode)
	}
}

// Evaluated in order for every waypoint; a waypoint may trigger several rules.
var advisoryRules = []advisoryRule{
	{
		Type: "heavy_rain", Severity: domain.SeverityDanger,
		Match: func(w *domain.WeatherObservation) bool {
			return codeIn(65, 82)(w) || w.PrecipitationMM >= 7.5
		},
		Template: "Heavy rain expected near {loc}",
	},
	{
		Type: "moderate_rain", Severity: domain.SeverityWarning,
		Match: func(w *domain.WeatherObservation) bool {
			return codeIn(63, 81)(w) || (w.PrecipitationMM >= 4.0 && w.PrecipitationMM < 7.5)
		},
		Template: "Moderate rain expected near {loc}",
	},
	{
		Type: "freezing_rain", Severity: domain.SeverityDanger,
		Match:    codeIn(56, 57, 66, 67),
		Template: "Freezing rain/drizzle near {loc} \u2014 road ice likely",
	},
	{
		Type: "heavy_snow", Severity: domain.SeverityDanger,
		Match:    codeIn(73, 75, 86),
		Template: "Heavy snow expected near {loc}",
	},
	{
		Type: "snow", Severity: domain.SeverityWarning,
		Match:    codeIn(71, 77, 85),
		Template: "Snow expected near {loc}",
	},
	{
		Type: "high_wind", Severity: domain.SeverityDanger,
		Match:    func(w *domain.WeatherObservation) bool { return w.WindSpeedKMH >= 75 },
		Template: "Dangerous winds ({wind} km/h) near {loc}",
	},
	{
		Type: "high_wind", Severity: domain.SeverityWarning,
		Match:    func(w *domain.WeatherObservation) bool { return w.WindSpeedKMH >= 50 && w.WindSpeedKMH < 75 },
		Template: "Strong winds ({wind} km/h) near {loc}",
	},
	{
		Type: "thunderstorm", Severity: domain.SeverityDanger,
		Match:    codeIn(95),
		Template: "Thunderstorm expected near {loc}",
	},
	{
		Type: "hail", Severity: domain.SeverityDanger,
		Match:    codeIn(96, 99),
		Template: "Thunderstorm with hail near {loc}",
	},
	{
		Type: "fog", Severity: domain.SeverityWarning,
		Match:    codeIn(45, 48),
		Template: "Fog near {loc} \u2014 reduced visibility",
	},
}

// pendingAdvisory is a triggered rule waiting for its place name.
type pendingAdvisory struct {
	rule     *advisoryRule
	location domain.GeoPoint
	wind     float64
}

type advisoryKey struct {
	Type     string
	Severity domain.AdvisorySeverity
}

// triggeredAdvisories scans waypoints in order. The first waypoint to trigger a
// (type, severity) pair supplies its location; later triggers of the pair are dropped.
func triggeredAdvisories(waypoints []domain.Waypoint) []pendingAdvisory {
	seen := make(map[advisoryKey]struct{})
	var pending []pendingAdvisory

	for _, wp := range waypoints {
		if wp.Weather == nil {
			continue
		}
		for i := range advisoryRules {
			rule := &advisoryRules[i]
			if !rule.Match(wp.Weather) {
				continue
			}
			k := advisoryKey{Type: rule.Type, Severity: rule.Severity}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			pending = append(pending, pendingAdvisory{rule: rule, location: wp.Location, wind: wp.Weather.WindSpeedKMH})
		}
	}

	return pending
}

func (p pendingAdvisory) render(place string) domain.Advisory {
	r := strings.NewReplacer(
		"{loc}", place,
		"{wind}", fmt.Sprintf("%.0f", math.RoundToEven(p.wind)),
	)
	return domain.Advisory{
		Type:     p.rule.Type,
		Severity: p.rule.Severity,
		Message:  r.Replace(p.rule.Template),
	}
}

// sortAdvisories orders danger before warning, then by type.
func sortAdvisories(advs []domain.Advisory) {
	slices.SortStableFunc(advs, func(a, b domain.Advisory) int {
		if d := a.Severity.Rank() - b.Severity.Rank(); d != 0 {
			return d
		}
		return strings.Compare(a.Type, b.Type)
	})
}

// placeNamer resolves display names for coordinates, keyed by PlaceKey.
type placeNamer interface {
	Resolve(ctx context.Context, points []domain.GeoPoint) map[domain.PlaceKey]string
}

// CollectAdvisories builds the ranked advisory list of every route.
// The winning coordinates of all routes are resolved in a single coalesced batch.
// The result is indexed like routes and never nil per route.
func CollectAdvisories(ctx context.Context, routes []domain.RouteWithWeather, places placeNamer) [][]domain.Advisory {
	pendingByRoute := make([][]pendingAdvisory, len(routes))
	var points []domain.GeoPoint
	for i := range routes {
		pendingByRoute[i] = triggeredAdvisories(routes[i].Waypoints)
		for _, p := range pendingByRoute[i] {
			points = append(points, p.location)
		}
	}

	names := map[domain.PlaceKey]string{}
	if len(points) > 0 && places != nil {
		names = places.Resolve(ctx, points)
	}

	out := make([][]domain.Advisory, len(routes))
	for i, pending := range pendingByRoute {
		advs := make([]domain.Advisory, 0, len(pending))
		for _, p := range pending {
			name, ok := names[p.location.PlaceKey()]
			if !ok || name == "" {
				name = domain.UnknownLocation
			}
			advs = append(advs, p.render(name))
		}
		sortAdvisories(advs)
		out[i] = advs
	}

	return out
}
