package domain

import "strings"

// UnknownLocation is substituted wherever a place name could not be resolved.
const UnknownLocation = "unknown location"

// Result of a reverse-geocode lookup.
// Locality is the most specific populated place, Region the broader area (state short name).
type Place struct {
	Locality         string
	Region           string
	FormattedAddress string
}

// Label renders "Town, ST", falling back to whichever part is present.
func (p Place) Label() string {
	town := strings.TrimSpace(p.Locality)
	region := strings.TrimSpace(p.Region)

	switch {
	case town != "" && region != "":
		return town + ", " + region
	case town != "":
		return town
	case region != "":
		return region
	case strings.TrimSpace(p.FormattedAddress) != "":
		return strings.TrimSpace(p.FormattedAddress)
	default:
		return UnknownLocation
	}
}
