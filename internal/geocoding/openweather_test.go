package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/nimbus/internal/geocoding"
	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/UnknownOlympus/nimbus/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) *mockHTTPClient {
	return &mockHTTPClient{
		doFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(bytes.NewBufferString(body)),
			}, nil
		},
	}
}

func TestOpenWeatherProvider_Geocode(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	apiKey := "test-api-key"
	newYork := models.Location{City: "New York", Country: "us"}

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), geocoding.OpenWeatherBaseURL)
				assert.Equal(t, "New York,us", req.URL.Query().Get("q"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, apiKey, req.URL.Query().Get("appid"))

				responseBody := `[{"name":"New York","lat":40.7,"lon":-74.0,"country":"US"}]`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := geocoding.NewOpenWeatherProvider(mockClient, "", apiKey, logger)
		coords, err := provider.Geocode(ctx, newYork)

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 40.7, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -74.0, coords.Longitude, 0.0001)
	})

	t.Run("query without country", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "Kyiv", req.URL.Query().Get("q"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`[{"lat":50.45,"lon":30.52}]`)),
				}, nil
			},
		}

		provider := geocoding.NewOpenWeatherProvider(mockClient, "", apiKey, logger)
		coords, err := provider.Geocode(ctx, models.Location{City: "Kyiv"})

		require.NoError(t, err)
		assert.Equal(t, models.Coordinates{Latitude: 50.45, Longitude: 30.52}, *coords)
	})

	t.Run("first of several results wins", func(t *testing.T) {
		body := `[{"lat":1.5,"lon":2.5},{"lat":3.5,"lon":4.5},{"lat":5.5,"lon":6.5}]`
		provider := geocoding.NewOpenWeatherProvider(respond(http.StatusOK, body), "", apiKey, logger)

		coords, err := provider.Geocode(ctx, newYork)

		require.NoError(t, err)
		assert.Equal(t, models.Coordinates{Latitude: 1.5, Longitude: 2.5}, *coords)
	})

	t.Run("custom base URL", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "geo.internal", req.URL.Host)

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`[{"lat":0,"lon":0}]`)),
				}, nil
			},
		}

		provider := geocoding.NewOpenWeatherProvider(mockClient, "http://geo.internal/direct", apiKey, logger)
		coords, err := provider.Geocode(ctx, newYork)

		require.NoError(t, err)
		assert.Equal(t, models.Coordinates{}, *coords)
	})

	t.Run("empty response", func(t *testing.T) {
		provider := geocoding.NewOpenWeatherProvider(respond(http.StatusOK, `[]`), "", apiKey, logger)

		coords, err := provider.Geocode(ctx, newYork)

		require.Error(t, err)
		assert.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNoResults)
		assert.Equal(t, upstream.KindEmpty, upstream.KindOf(err))
	})

	t.Run("city not found", func(t *testing.T) {
		provider := geocoding.NewOpenWeatherProvider(respond(http.StatusNotFound, `{"cod":"404"}`), "", apiKey, logger)

		coords, err := provider.Geocode(ctx, newYork)

		assert.Nil(t, coords)
		require.ErrorIs(t, err, upstream.ErrNotFound)
	})

	t.Run("unauthorized", func(t *testing.T) {
		provider := geocoding.NewOpenWeatherProvider(respond(http.StatusUnauthorized, `{"cod":401}`), "", apiKey, logger)

		coords, err := provider.Geocode(ctx, newYork)

		assert.Nil(t, coords)
		require.ErrorIs(t, err, upstream.ErrUnauthorized)
	})

	t.Run("network failure", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: lookup api.openweathermap.org: no such host")
			},
		}

		provider := geocoding.NewOpenWeatherProvider(mockClient, "", apiKey, logger)
		coords, err := provider.Geocode(ctx, newYork)

		assert.Nil(t, coords)
		require.Error(t, err)
		assert.ErrorContains(t, err, "no such host")
		assert.Equal(t, upstream.KindUpstream, upstream.KindOf(err))
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		provider := geocoding.NewOpenWeatherProvider(respond(http.StatusOK, `invalid json`), "", apiKey, logger)

		coords, err := provider.Geocode(ctx, newYork)

		assert.Nil(t, coords)
		require.ErrorIs(t, err, upstream.ErrMalformedResponse)
		assert.ErrorContains(t, err, "failed to decode geocoding response")
	})

	t.Run("result without coordinates", func(t *testing.T) {
		provider := geocoding.NewOpenWeatherProvider(respond(http.StatusOK, `[{"name":"Nowhere"}]`), "", apiKey, logger)

		coords, err := provider.Geocode(ctx, newYork)

		assert.Nil(t, coords)
		require.ErrorIs(t, err, upstream.ErrMalformedResponse)
	})
}
