package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/UnknownOlympus/nimbus/internal/forecast"
	"github.com/UnknownOlympus/nimbus/internal/geocoding"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultEnvFile is the env file read when no other path is given.
const DefaultEnvFile = ".env"

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("API_KEY not found. Please add your OpenWeatherMap API key to .env")

// Config holds the configuration settings for the forecast CLI.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - APIKey: The OpenWeatherMap API key used by both endpoints.
// - GeocodeURL: The direct geocoding endpoint.
// - ForecastURL: The 5 day / 3 hour forecast endpoint.
// - HTTPTimeout: Timeout of a single upstream request.
// - PushgatewayURL: Optional Prometheus Pushgateway for run metrics.
type Config struct {
	Env            string        `mapstructure:"env"`
	APIKey         string        `mapstructure:"api_key"`
	GeocodeURL     string        `mapstructure:"geocode_url"`
	ForecastURL    string        `mapstructure:"forecast_url"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	PushgatewayURL string        `mapstructure:"pushgateway_url"`
}

// Load reads envFile into the process environment, if it exists, and builds
// a Config from the environment. A missing API key is ErrMissingAPIKey.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	// Variables already present in the environment win over the file.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
	}

	vpr := viper.New()
	vpr.SetDefault("env", "production")
	vpr.SetDefault("geocode_url", geocoding.OpenWeatherBaseURL)
	vpr.SetDefault("forecast_url", forecast.OpenWeatherBaseURL)
	vpr.SetDefault("http_timeout", "10s")
	vpr.SetDefault("pushgateway_url", "")

	bindings := map[string]string{
		"api_key":         "API_KEY",
		"env":             "NIMBUS_ENV",
		"geocode_url":     "NIMBUS_GEOCODE_URL",
		"forecast_url":    "NIMBUS_FORECAST_URL",
		"http_timeout":    "NIMBUS_HTTP_TIMEOUT",
		"pushgateway_url": "NIMBUS_PUSHGATEWAY_URL",
	}
	for key, env := range bindings {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	timeout, err := time.ParseDuration(vpr.GetString("http_timeout"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse http timeout from configuration: %w", err)
	}

	cfg := &Config{
		Env:            vpr.GetString("env"),
		APIKey:         strings.TrimSpace(vpr.GetString("api_key")),
		GeocodeURL:     vpr.GetString("geocode_url"),
		ForecastURL:    vpr.GetString("forecast_url"),
		HTTPTimeout:    timeout,
		PushgatewayURL: vpr.GetString("pushgateway_url"),
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}
