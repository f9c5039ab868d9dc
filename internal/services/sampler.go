package services

import (
	"fmt"
	"math"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/geo"
	"time"
)

// SampleIntervalSeconds is the real-world travel time between two sampled waypoints.
const SampleIntervalSeconds = 15 * 60

// Sample waypoints along the route at fixed 15-minute intervals.
//
// Each step is assumed to be driven at a constant speed (distance / duration).
// The step polyline is walked segment by segment and every time a 15-minute
// boundary falls inside a segment the exact position is interpolated.
// The first waypoint is always the first step's start at offset 0 and the last one
// is the last step's end at the total elapsed minutes.
func SampleWaypoints(steps []domain.RouteStep, departAt time.Time) ([]domain.Waypoint, error) {
	if len(steps) == 0 {
		return []domain.Waypoint{}, nil
	}

	waypoints := []domain.Waypoint{{
		Location:         steps[0].Start,
		MinutesFromStart: 0,
		EstimatedTime:    departAt,
	}}

	elapsed := 0.0
	nextThreshold := float64(SampleIntervalSeconds)

	for i, step := range steps {
		// Degenerate steps have no distance to sample against.
		if step.DistanceMeters == 0 || step.DurationSeconds == 0 {
			elapsed += float64(step.DurationSeconds)
			continue
		}

		speed := float64(step.DistanceMeters) / float64(step.DurationSeconds)

		points, err := geo.DecodePolyline(step.Polyline)
		if err != nil {
			return nil, fmt.Errorf("sample waypoints: step %d: %w", i, err)
		}

		for j := 0; j+1 < len(points); j++ {
			p1, p2 := points[j], points[j+1]

			segDuration := 0.0
			if speed > 0 {
				segDuration = geo.Distance(p1, p2) / speed
			}
			segEnd := elapsed + segDuration

			for nextThreshold <= segEnd {
				fraction := 0.0
				if segDuration > 0 {
					fraction = (nextThreshold - elapsed) / segDuration
				}
				fraction = math.Max(0, math.Min(1, fraction))

				waypoints = append(waypoints, domain.Waypoint{
					Location:         geo.Interpolate(p1, p2, fraction),
					MinutesFromStart: int(nextThreshold / 60),
					EstimatedTime:    departAt.Add(secondsToDuration(nextThreshold)),
				})
				nextThreshold += SampleIntervalSeconds
			}

			elapsed = segEnd
		}
	}

	totalMinutes := int(math.Floor(elapsed / 60))
	if waypoints[len(waypoints)-1].MinutesFromStart != totalMinutes {
		waypoints = append(waypoints, domain.Waypoint{
			Location:         steps[len(steps)-1].End,
			MinutesFromStart: totalMinutes,
			EstimatedTime:    departAt.Add(secondsToDuration(elapsed)),
		})
	}

	return waypoints, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
