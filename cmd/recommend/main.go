package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"route-weather-service/internal/adapters/googlemaps"
	"route-weather-service/internal/adapters/model"
	"route-weather-service/internal/adapters/openmeteo"
	"route-weather-service/internal/api/dto"
	"route-weather-service/internal/domain"
	"route-weather-service/internal/platform/logger"
	"route-weather-service/internal/ports"
	"route-weather-service/internal/services"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Origin      string `short:"o" long:"origin"      description:"Origin address or place" required:"true"`
	Destination string `short:"d" long:"destination" description:"Destination address or place" required:"true"`
	Depart      string `short:"t" long:"depart"      description:"Departure time (ISO-8601). Defaults to now"`
	Format      string `short:"f" long:"format"      description:"Output format" choice:"yaml" choice:"json" default:"yaml"`
	Output      string `long:"out"                   description:"Output file path. Writes to stdout if empty"`

	APIKey         string        `long:"google-maps-api-key" env:"GOOGLE_MAPS_API_KEY" description:"Directions and Geocoding API key" required:"true"`
	WeatherBaseURL string        `long:"weather-base-url"    env:"WEATHER_BASE_URL"    description:"Open-Meteo API base URL" default:"https://api.open-meteo.com/v1"`
	ModelURL       string        `long:"model-url"           env:"MODEL_URL"           description:"Remote scoring model endpoint"`
	Timeout        time.Duration `long:"timeout"                                       description:"Overall deadline" default:"60s"`
	Verbose        bool          `short:"v" long:"verbose"                             description:"Log pipeline steps to stderr"`
}

// recommend runs the route-weather pipeline once and prints the report.
func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	req := dto.RouteWeatherRequest{Origin: opts.Origin, Destination: opts.Destination, DepartureTime: &opts.Depart}
	departAt, err := req.Validate()
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if opts.Verbose {
		if log, err = logger.NewNamed("development", "route-weather-recommend"); err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	gmaps, err := googlemaps.NewClient(opts.APIKey, googlemaps.WithHTTPClient(httpClient))
	if err != nil {
		return err
	}

	var scoring ports.ScoringModel = model.NewPenaltyModel()
	if opts.ModelURL != "" {
		remote, err := model.NewRemoteModel(opts.ModelURL, httpClient)
		if err != nil {
			return err
		}
		scoring = remote
	}

	rec := services.NewRecommender(services.RecommenderDeps{
		Routing:  gmaps,
		Weather:  openmeteo.NewForecastProvider(opts.WeatherBaseURL, httpClient),
		Geocoder: gmaps,
		Model:    scoring,
		Logger:   log,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	report, err := rec.GetRouteRecommendation(ctx, req.Origin, req.Destination, departAt)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return writeReport(out, report, opts.Format)
}

// writeReport renders the report with its JSON field names in either format.
func writeReport(w io.Writer, report *domain.RouteWeatherReport, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("write report: encode: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("write report: decode: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write report: yaml: %w", err)
	}
	return enc.Close()
}
