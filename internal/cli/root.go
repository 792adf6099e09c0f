// Package cli defines the cobra command for nimbus.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/UnknownOlympus/nimbus/internal/config"
	"github.com/UnknownOlympus/nimbus/internal/forecast"
	"github.com/UnknownOlympus/nimbus/internal/geocoding"
	"github.com/UnknownOlympus/nimbus/internal/logger"
	"github.com/UnknownOlympus/nimbus/internal/metrics"
	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/presenter"
	"github.com/UnknownOlympus/nimbus/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// Example is the invocation shown when the command is used incorrectly.
const Example = "nimbus 'New York'"

// ErrUsage is returned for a missing city or unparsable flags.
var ErrUsage = errors.New("invalid command")

type options struct {
	country string
	envFile string
}

// NewRootCmd creates the root cobra command writing the forecast to stdout
// and errors and logs to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "nimbus <city>",
		Short:         "Print the weather forecast for a city",
		Long:          "Resolve a city to coordinates with OpenWeatherMap and print its 5 day / 3 hour forecast.",
		Example:       "  " + Example + "\n  nimbus Paris --country fr",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one city, got %d arguments", ErrUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := models.Location{City: args[0], Country: opts.country}
			return run(cmd.Context(), loc, opts.envFile, stdout, stderr)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	root.Flags().StringVar(&opts.country, "country", "", "2-letter country code of the city (optional)")
	root.Flags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "env file holding API_KEY")

	return root
}

// Execute runs the command with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.Is(err, ErrUsage) {
		presenter.New(stdout, stderr, forecast.TemperatureSymbol).
			Usage("Invalid command. You must provide a city name.", Example)
	}

	return 1
}

// run loads configuration and performs one lookup. Every failure is reported
// to stderr here, except usage errors, which Execute reports.
func run(ctx context.Context, loc models.Location, envFile string, stdout, stderr io.Writer) error {
	view := presenter.New(stdout, stderr, forecast.TemperatureSymbol)

	cfg, err := config.Load(envFile)
	if err != nil {
		view.Failure(err)
		return err
	}

	log := logger.Setup(cfg.Env, stderr)

	reg := prometheus.NewRegistry()
	appMetrics := metrics.NewMetrics(reg)
	defer pushMetrics(ctx, cfg, reg, log)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	svc := service.NewForecastService(
		log,
		geocoding.NewOpenWeatherProvider(httpClient, cfg.GeocodeURL, cfg.APIKey, log),
		forecast.NewOpenWeatherFetcher(httpClient, cfg.ForecastURL, cfg.APIKey, log),
		appMetrics,
	)

	res, err := svc.Lookup(ctx, loc)
	if err != nil {
		report(view, err)
		recordOutcome(appMetrics, err)
		return err
	}

	err = view.Forecast(res.Location, res.Forecast)
	recordOutcome(appMetrics, err)

	return err
}
