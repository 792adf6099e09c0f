package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// JobName is the Pushgateway job label for a forecast run.
const JobName = "nimbus"

type Metrics struct {
	Lookups        *prometheus.CounterVec
	APIErrors      *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Lookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "forecast_lookups_total",
			Help: "Total number of forecast lookups by outcome.",
		}, []string{"status"}),
		APIErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "forecast_provider_api_errors_total",
			Help: "Total number of errors received from the weather provider API.",
		}, []string{"endpoint", "kind"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "forecast_provider_request_duration_seconds",
			Help:    "Duration of requests to the weather provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// Push sends everything gathered by gatherer to the Pushgateway at url.
func Push(ctx context.Context, url string, gatherer prometheus.Gatherer) error {
	if err := push.New(url, JobName).Gatherer(gatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}

	return nil
}
