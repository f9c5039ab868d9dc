package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/obs"
)

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l latLng) point() domain.GeoPoint { return domain.GeoPoint{Lat: l.Lat, Lng: l.Lng} }

type valueField struct {
	Value int `json:"value"`
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Summary          string `json:"summary"`
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			StartAddress string `json:"start_address"`
			EndAddress   string `json:"end_address"`
			Steps        []struct {
				Duration      valueField `json:"duration"`
				Distance      valueField `json:"distance"`
				StartLocation latLng     `json:"start_location"`
				EndLocation   latLng     `json:"end_location"`
				Polyline      struct {
					Points string `json:"points"`
				} `json:"polyline"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

// Routes fetches all driving alternatives between origin and destination.
// Legs are flattened into one ordered step list per route.
func (c *Client) Routes(ctx context.Context, origin, destination string) (_ *domain.RouteSet, err error) {
	defer obs.Time(ctx, "googlemaps.Routes")(&err)

	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	params.Set("mode", "driving")
	params.Set("alternatives", "true")

	var decoded directionsResponse
	if err := c.getJSON(ctx, "/directions/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("get directions: %w", err)
	}

	if decoded.Status != "OK" {
		return nil, &domain.RoutingError{Status: decoded.Status}
	}
	if len(decoded.Routes) == 0 || len(decoded.Routes[0].Legs) == 0 {
		return nil, &domain.RoutingError{Status: "ZERO_RESULTS"}
	}

	legs := decoded.Routes[0].Legs
	set := &domain.RouteSet{
		OriginAddress:      legs[0].StartAddress,
		DestinationAddress: legs[len(legs)-1].EndAddress,
		Routes:             make([]domain.Route, 0, len(decoded.Routes)),
	}

	for i, r := range decoded.Routes {
		route := domain.Route{
			Index:            i,
			Summary:          r.Summary,
			OverviewPolyline: r.OverviewPolyline.Points,
		}
		for _, leg := range r.Legs {
			for _, s := range leg.Steps {
				route.Steps = append(route.Steps, domain.RouteStep{
					DurationSeconds: s.Duration.Value,
					DistanceMeters:  s.Distance.Value,
					Start:           s.StartLocation.point(),
					End:             s.EndLocation.point(),
					Polyline:        s.Polyline.Points,
				})
			}
		}
		set.Routes = append(set.Routes, route)
	}

	return set, nil
}
