package domain

type AdvisorySeverity string

const (
	SeverityDanger  AdvisorySeverity = "danger"
	SeverityWarning AdvisorySeverity = "warning"
)

// Rank orders severities for display: danger first.
func (s AdvisorySeverity) Rank() int {
	if s == SeverityDanger {
		return 0
	}
	return 1
}

// A ranked, human-readable hazard notice attached to a route.
// Within one route advisories are unique by (Type, Severity).
type Advisory struct {
	Type     string           `json:"type"`
	Severity AdvisorySeverity `json:"severity"`
	Message  string           `json:"message"`
}
