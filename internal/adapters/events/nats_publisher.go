package events

import (
	"context"
	"encoding/json"
	"fmt"
	"route-weather-service/internal/domain"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const DefaultSubjectPrefix = "route-weather.recommendations"

// RecommendationEvent summarizes one freshly computed report.
type RecommendationEvent struct {
	EventID               string    `json:"eventId"`
	Origin                string    `json:"origin"`
	Destination           string    `json:"destination"`
	OriginAddress         string    `json:"originAddress"`
	DestinationAddress    string    `json:"destinationAddress"`
	RecommendedRouteIndex int       `json:"recommendedRouteIndex"`
	RouteCount            int       `json:"routeCount"`
	OverallScores         []float64 `json:"overallScores"`
	DangerAdvisories      int       `json:"dangerAdvisories"`
	WarningAdvisories     int       `json:"warningAdvisories"`
	PublishedAt           time.Time `json:"publishedAt"`
}

// NATSPublisher publishes a RecommendationEvent per report on
// "<prefix>.<recommended route index>".
type NATSPublisher struct {
	nc     *nats.Conn
	prefix string
	log    *zap.Logger
	now    func() time.Time
}

func NewNATSPublisher(url, prefix string, log *zap.Logger) (*NATSPublisher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultSubjectPrefix
	}

	nc, err := nats.Connect(url,
		nats.Name("route-weather-service"),
		nats.Timeout(5*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			log.Info("nats reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Info("nats closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats publisher: connect: %w", err)
	}

	return &NATSPublisher{nc: nc, prefix: prefix, log: log, now: time.Now}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		_ = p.nc.Drain()
		p.nc.Close()
	}
}

func (p *NATSPublisher) PublishRecommendation(
	ctx context.Context,
	origin, destination string,
	report *domain.RouteWeatherReport,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ev := NewRecommendationEvent(origin, destination, report, p.now())
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("publish recommendation: encode event: %w", err)
	}

	subject := p.subject(ev.RecommendedRouteIndex)
	if err := p.nc.Publish(subject, b); err != nil {
		return fmt.Errorf("publish recommendation: subject=%s: %w", subject, err)
	}

	p.log.Debug("nats publish", zap.String("subject", subject), zap.String("event_id", ev.EventID))
	return nil
}

func (p *NATSPublisher) subject(recommended int) string {
	return fmt.Sprintf("%s.%s", p.prefix, subjectToken(fmt.Sprint(recommended)))
}

func NewRecommendationEvent(origin, destination string, report *domain.RouteWeatherReport, at time.Time) RecommendationEvent {
	ev := RecommendationEvent{
		EventID:            uuid.NewString(),
		Origin:             origin,
		Destination:        destination,
		OriginAddress:      report.OriginAddress,
		DestinationAddress: report.DestinationAddress,
		RouteCount:         len(report.Routes),
		PublishedAt:        at.UTC(),
	}

	if rec := report.Recommendation; rec != nil {
		ev.RecommendedRouteIndex = rec.RecommendedRouteIndex
		for _, s := range rec.Scores {
			ev.OverallScores = append(ev.OverallScores, s.OverallScore)
		}
		for _, advs := range rec.Advisories {
			for _, a := range advs {
				if a.Severity == domain.SeverityDanger {
					ev.DangerAdvisories++
				} else {
					ev.WarningAdvisories++
				}
			}
		}
	}

	return ev
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS token cannot contain spaces, '>', '*', or trailing '.'
	repl := strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "/", "_", "\t", "_")
	s = repl.Replace(s)
	if s == "" {
		s = "_"
	}
	return s
}
