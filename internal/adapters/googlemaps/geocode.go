package googlemaps

import (
	"context"
	"fmt"
	"net/url"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/obs"
	"slices"
)

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress  string `json:"formatted_address"`
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// ReversePlace resolves a point to its town and state.
// The town is the locality, falling back to administrative_area_level_3; the
// region is the short name of administrative_area_level_1.
func (c *Client) ReversePlace(ctx context.Context, p domain.GeoPoint) (_ domain.Place, err error) {
	defer obs.Time(ctx, "googlemaps.ReversePlace")(&err)

	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%g,%g", p.Lat, p.Lng))
	params.Set("result_type", "locality|administrative_area_level_3")

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", params, &decoded); err != nil {
		return domain.Place{}, fmt.Errorf("reverse geocode: %w", err)
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		return domain.Place{}, fmt.Errorf("reverse geocode: status %s", decoded.Status)
	}

	first := decoded.Results[0]
	place := domain.Place{FormattedAddress: first.FormattedAddress}
	for _, comp := range first.AddressComponents {
		switch {
		case slices.Contains(comp.Types, "locality"):
			place.Locality = comp.LongName
		case slices.Contains(comp.Types, "administrative_area_level_3") && place.Locality == "":
			place.Locality = comp.LongName
		case slices.Contains(comp.Types, "administrative_area_level_1"):
			place.Region = comp.ShortName
			if place.Region == "" {
				place.Region = comp.LongName
			}
		}
	}

	return place, nil
}
