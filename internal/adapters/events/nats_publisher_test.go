package events

import (
	"route-weather-service/internal/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecommendationEvent(t *testing.T) {
	report := &domain.RouteWeatherReport{
		OriginAddress:      "San Francisco, CA, USA",
		DestinationAddress: "Sacramento, CA, USA",
		Routes:             make([]domain.RouteWithWeather, 2),
		Recommendation: &domain.Recommendation{
			RecommendedRouteIndex: 1,
			Scores:                []domain.RouteScore{{OverallScore: 61.5}, {OverallScore: 88}},
			Advisories: [][]domain.Advisory{
				{{Type: "hail", Severity: domain.SeverityDanger}, {Type: "fog", Severity: domain.SeverityWarning}},
				{{Type: "fog", Severity: domain.SeverityWarning}},
			},
		},
	}
	at := time.Date(2026, 2, 16, 10, 0, 0, 0, time.FixedZone("PST", -8*3600))

	ev := NewRecommendationEvent("sf", "sac", report, at)

	_, err := uuid.Parse(ev.EventID)
	require.NoError(t, err)
	assert.Equal(t, "sf", ev.Origin)
	assert.Equal(t, "Sacramento, CA, USA", ev.DestinationAddress)
	assert.Equal(t, 1, ev.RecommendedRouteIndex)
	assert.Equal(t, 2, ev.RouteCount)
	assert.Equal(t, []float64{61.5, 88}, ev.OverallScores)
	assert.Equal(t, 1, ev.DangerAdvisories)
	assert.Equal(t, 2, ev.WarningAdvisories)
	assert.Equal(t, time.UTC, ev.PublishedAt.Location())
}

func TestSubjectToken(t *testing.T) {
	assert.Equal(t, "a_b_c", subjectToken(" a.b c "))
	assert.Equal(t, "_", subjectToken(""))
	assert.Equal(t, "x__", subjectToken("x>*"))
}

func TestSubject(t *testing.T) {
	p := &NATSPublisher{prefix: DefaultSubjectPrefix}
	assert.Equal(t, "route-weather.recommendations.2", p.subject(2))
}

func TestNewNATSPublisherUnreachable(t *testing.T) {
	_, err := NewNATSPublisher("nats://127.0.0.1:1", "", nil)
	assert.Error(t, err)
}
