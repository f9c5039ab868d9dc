package domain

// Positions within a FeatureVector. The order is fixed by the scoring model.
const (
	FeatureDurationRatio = iota
	FeatureAvgWeatherSeverity
	FeatureMaxWeatherSeverity
	FeatureAvgWindSpeed
	FeatureMaxWindSpeed
	FeatureAvgPrecipitation
	FeatureMaxPrecipitation
	FeaturePctAdverseWaypoints
	FeatureAvgPrecipProbability

	FeatureCount
)

// Fixed-length numeric summary of one route, consumed by the scoring model.
type FeatureVector [FeatureCount]float64

var FeatureNames = [FeatureCount]string{
	"duration_ratio",
	"avg_weather_severity",
	"max_weather_severity",
	"avg_wind_speed",
	"max_wind_speed",
	"avg_precipitation",
	"max_precipitation",
	"pct_adverse_waypoints",
	"avg_precip_probability",
}

type RouteScore struct {
	OverallScore         float64 `json:"overall_score"`
	DurationScore        float64 `json:"duration_score"`
	WeatherScore         float64 `json:"weather_score"`
	RecommendationReason string  `json:"recommendation_reason"`
}

// Scores and advisories for every alternative of one request.
// Scores and Advisories are indexed like the routes they were computed from.
type Recommendation struct {
	RecommendedRouteIndex int          `json:"recommended_route_index"`
	Scores                []RouteScore `json:"scores"`
	Advisories            [][]Advisory `json:"advisories"`
}
