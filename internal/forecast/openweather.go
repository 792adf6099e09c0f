package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/upstream"
)

// OpenWeatherBaseURL -- OpenWeatherMap 5 day / 3 hour forecast endpoint.
const OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

// OpenWeatherFetcher implements Fetcher using the OpenWeatherMap forecast API.
type OpenWeatherFetcher struct {
	client  upstream.HTTPClient
	baseURL string
	apiKey  string
	log     *slog.Logger
}

// openWeatherForecast distinguishes an absent "list" key from an empty one.
type openWeatherForecast struct {
	List *[]models.ForecastEntry `json:"list"`
}

// NewOpenWeatherFetcher creates a forecast fetcher. An empty baseURL falls back to OpenWeatherBaseURL.
func NewOpenWeatherFetcher(
	client upstream.HTTPClient,
	baseURL string,
	apiKey string,
	log *slog.Logger,
) *OpenWeatherFetcher {
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}

	return &OpenWeatherFetcher{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// Forecast fetches the forecast for coords. A payload without a "list" key is malformed.
func (of *OpenWeatherFetcher) Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error) {
	of.log.DebugContext(ctx, "Fetching forecast", "lat", coords.Latitude, "lon", coords.Longitude)

	body, err := upstream.Get(ctx, of.client, of.log, of.baseURL, url.Values{
		"lat":   {coords.LatString()},
		"lon":   {coords.LonString()},
		"appid": {of.apiKey},
		"units": {Units},
		"lang":  {Language},
	})
	if err != nil {
		return nil, err
	}

	var payload openWeatherForecast
	if err = json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode forecast response: %w", upstream.ErrMalformedResponse, err)
	}

	if payload.List == nil {
		return nil, fmt.Errorf("%w: forecast response has no list", upstream.ErrMalformedResponse)
	}

	of.log.InfoContext(ctx, "Forecast received", "entries", len(*payload.List))

	return &models.Forecast{List: *payload.List}, nil
}
