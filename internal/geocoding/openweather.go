package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/upstream"
)

// OpenWeatherBaseURL -- OpenWeatherMap direct geocoding endpoint.
const OpenWeatherBaseURL = "http://api.openweathermap.org/geo/1.0/direct"

// ErrNoResults is returned when the geocoding API answers with an empty list.
var ErrNoResults = fmt.Errorf("%w: no location matched the query", upstream.ErrEmptyResult)

// OpenWeatherProvider implements geocoding using the OpenWeatherMap Geocoding API.
type OpenWeatherProvider struct {
	client  upstream.HTTPClient // HTTP client for making requests
	baseURL string              // Base URL for the geocoding API
	apiKey  string              // API key (appid)
	log     *slog.Logger        // Logger for logging operations
}

// openWeatherLocation is a single item of the geocoding response array.
type openWeatherLocation struct {
	Name    string   `json:"name"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// NewOpenWeatherProvider creates a new OpenWeatherMap geocoding provider.
// An empty baseURL falls back to OpenWeatherBaseURL.
func NewOpenWeatherProvider(
	client upstream.HTTPClient,
	baseURL string,
	apiKey string,
	log *slog.Logger,
) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = OpenWeatherBaseURL
	}

	return &OpenWeatherProvider{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		log:     log,
	}
}

// Geocode resolves the location into the coordinates of the first match.
func (op *OpenWeatherProvider) Geocode(ctx context.Context, loc models.Location) (*models.Coordinates, error) {
	op.log.DebugContext(ctx, "Geocoding using OpenWeatherMap", "query", loc.Query())

	body, err := upstream.Get(ctx, op.client, op.log, op.baseURL, url.Values{
		"q":     {loc.Query()},
		"limit": {"1"},
		"appid": {op.apiKey},
	})
	if err != nil {
		return nil, err
	}

	var results []openWeatherLocation
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode geocoding response: %w", upstream.ErrMalformedResponse, err)
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	first := results[0]
	if first.Lat == nil || first.Lon == nil {
		return nil, fmt.Errorf("%w: geocoding result without lat/lon", upstream.ErrMalformedResponse)
	}

	op.log.InfoContext(ctx, "OpenWeatherMap found location",
		"query", loc.Query(),
		"name", first.Name,
		"country", first.Country,
		"lat", *first.Lat,
		"lon", *first.Lon,
	)

	return &models.Coordinates{
		Latitude:  *first.Lat,
		Longitude: *first.Lon,
	}, nil
}
