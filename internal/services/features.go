package services

import (
	"route-weather-service/internal/domain"
)

// ExtractFeatures reduces a weather-annotated route to the model's fixed feature vector.
//
// Only waypoints carrying weather contribute to the weather features. When none do,
// the duration ratio is still computed and every weather feature is 0.
func ExtractFeatures(route *domain.RouteWithWeather, minDurationMinutes int) domain.FeatureVector {
	var f domain.FeatureVector
	f[domain.FeatureDurationRatio] = float64(route.TotalDurationMinutes) / float64(max(minDurationMinutes, 1))

	var (
		n                                int
		sumSev, maxSev                   float64
		sumWind, maxWind                 float64
		sumPrecip, maxPrecip, sumPrecipP float64
		adverse                          int
	)

	for _, wp := range route.Waypoints {
		w := wp.Weather
		if w == nil {
			continue
		}

		sev := domain.ConditionSeverity(w.WeatherCode)
		if n == 0 {
			maxSev, maxWind, maxPrecip = sev, w.WindSpeedKMH, w.PrecipitationMM
		}
		n++

		sumSev += sev
		maxSev = max(maxSev, sev)
		sumWind += w.WindSpeedKMH
		maxWind = max(maxWind, w.WindSpeedKMH)
		sumPrecip += w.PrecipitationMM
		maxPrecip = max(maxPrecip, w.PrecipitationMM)
		sumPrecipP += float64(w.PrecipitationProb)
		if w.IsAdverse() {
			adverse++
		}
	}

	if n == 0 {
		return f
	}

	count := float64(n)
	f[domain.FeatureAvgWeatherSeverity] = sumSev / count
	f[domain.FeatureMaxWeatherSeverity] = maxSev
	f[domain.FeatureAvgWindSpeed] = sumWind / count
	f[domain.FeatureMaxWindSpeed] = maxWind
	f[domain.FeatureAvgPrecipitation] = sumPrecip / count
	f[domain.FeatureMaxPrecipitation] = maxPrecip
	f[domain.FeaturePctAdverseWaypoints] = float64(adverse) / count
	f[domain.FeatureAvgPrecipProbability] = sumPrecipP / count

	return f
}
