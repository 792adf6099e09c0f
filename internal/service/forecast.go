package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/forecast"
	"github.com/UnknownOlympus/nimbus/internal/geocoding"
	"github.com/UnknownOlympus/nimbus/internal/metrics"
	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/upstream"
)

// Stage names a step of a lookup; it doubles as the metrics endpoint label.
type Stage string

const (
	StageGeocode  Stage = "geocode"
	StageForecast Stage = "forecast"
)

// StageError reports which stage of a lookup failed and with what input.
// Coordinates is set only for StageForecast.
type StageError struct {
	Stage       Stage
	Location    models.Location
	Coordinates *models.Coordinates
	Err         error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Stage, e.Location.Query(), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Kind classifies the underlying failure.
func (e *StageError) Kind() upstream.Kind {
	return upstream.KindOf(e.Err)
}

// Result is a successful lookup.
type Result struct {
	Location    models.Location
	Coordinates models.Coordinates
	Forecast    *models.Forecast
}

// ForecastService resolves a location and fetches its forecast.
type ForecastService struct {
	log      *slog.Logger       // Logger for logging service activities
	provider geocoding.Provider // Geocoding provider resolving city names
	fetcher  forecast.Fetcher   // Forecast source keyed by coordinates
	metrics  *metrics.Metrics   // Metrics for tracking upstream calls; run outcomes are counted by the caller
}

// NewForecastService creates a new instance of ForecastService.
func NewForecastService(
	log *slog.Logger,
	provider geocoding.Provider,
	fetcher forecast.Fetcher,
	metrics *metrics.Metrics,
) *ForecastService {
	return &ForecastService{
		log:      log,
		provider: provider,
		fetcher:  fetcher,
		metrics:  metrics,
	}
}

// Lookup geocodes loc and fetches the forecast for the result.
// The forecast stage is never reached when geocoding fails. Errors are *StageError.
func (fs *ForecastService) Lookup(ctx context.Context, loc models.Location) (*Result, error) {
	fs.log.DebugContext(ctx, "Looking up forecast", "city", loc.City, "country", loc.Country)

	var coords *models.Coordinates
	err := fs.observe(ctx, StageGeocode, func() error {
		var gerr error
		coords, gerr = fs.provider.Geocode(ctx, loc)
		return gerr
	})
	if err != nil {
		return nil, &StageError{Stage: StageGeocode, Location: loc, Err: err}
	}

	var fc *models.Forecast
	err = fs.observe(ctx, StageForecast, func() error {
		var ferr error
		fc, ferr = fs.fetcher.Forecast(ctx, *coords)
		return ferr
	})
	if err != nil {
		return nil, &StageError{Stage: StageForecast, Location: loc, Coordinates: coords, Err: err}
	}

	fs.log.DebugContext(ctx, "Lookup finished", "city", loc.City, "entries", len(fc.List))

	return &Result{Location: loc, Coordinates: *coords, Forecast: fc}, nil
}

// observe runs call, recording its duration and, on failure, the error kind.
func (fs *ForecastService) observe(ctx context.Context, stage Stage, call func() error) error {
	startTime := time.Now()
	err := call()
	duration := time.Since(startTime).Seconds()
	fs.metrics.RequestSeconds.WithLabelValues(string(stage)).Observe(duration)

	if err != nil {
		kind := upstream.KindOf(err)
		fs.log.InfoContext(ctx, "Upstream call failed", "stage", stage, "kind", kind.String(), "error", err)
		fs.metrics.APIErrors.WithLabelValues(string(stage), kind.String()).Inc()
	}

	return err
}
