package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/nimbus/internal/config"
	"github.com/UnknownOlympus/nimbus/internal/metrics"
	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/presenter"
	"github.com/UnknownOlympus/nimbus/internal/service"
	"github.com/UnknownOlympus/nimbus/internal/upstream"
	"github.com/prometheus/client_golang/prometheus"
)

// report turns a lookup failure into the message shown to the user.
func report(view *presenter.Presenter, err error) {
	var stageErr *service.StageError
	if !errors.As(err, &stageErr) {
		view.Failure(err)
		return
	}

	kind := stageErr.Kind()
	if kind == upstream.KindUnauthorized {
		view.Errorf("Invalid API key")
		return
	}

	switch stageErr.Stage {
	case service.StageGeocode:
		switch kind {
		case upstream.KindNotFound:
			view.Errorf("City %s not found.", stageErr.Location.City)
		case upstream.KindEmpty:
			view.Errorf("Unable to fetch coordinates for city %s.", stageErr.Location.City)
		default:
			view.Failure(stageErr.Err)
		}
	case service.StageForecast:
		switch kind {
		case upstream.KindNotFound, upstream.KindMalformed:
			coords := stageErr.Coordinates
			view.Errorf("Unable to fetch forecast data for coordinates lat:%s lon:%s",
				coords.LatString(), coords.LonString())
		default:
			view.Failure(stageErr.Err)
		}
	default:
		view.Failure(err)
	}
}

// Lookup outcomes; each run records exactly one.
const (
	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
	outcomeMalformed = "malformed"
)

// recordOutcome counts the final result of a run under a single status label.
func recordOutcome(m *metrics.Metrics, err error) {
	var status string
	switch {
	case err == nil:
		status = outcomeSuccess
	case errors.Is(err, models.ErrMalformedEntry):
		status = outcomeMalformed
	default:
		status = outcomeFailure
	}

	m.Lookups.WithLabelValues(status).Inc()
}

// pushMetrics exports run metrics when a Pushgateway is configured.
// A failed push is logged and never changes the outcome of the run.
func pushMetrics(ctx context.Context, cfg *config.Config, reg *prometheus.Registry, log *slog.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}

	if err := metrics.Push(ctx, cfg.PushgatewayURL, reg); err != nil {
		log.WarnContext(ctx, "Metrics push failed", "url", cfg.PushgatewayURL, "error", err)
		return
	}

	log.DebugContext(ctx, "Metrics pushed", "url", cfg.PushgatewayURL)
}
