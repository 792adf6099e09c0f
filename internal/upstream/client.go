// Package upstream holds the HTTP plumbing shared by the OpenWeatherMap clients.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// secretParams are query parameters never shown in errors or logs.
var secretParams = []string{"appid"}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get issues a GET to baseURL with the given query parameters and returns the body
// of a 2xx response. Non-2xx responses come back as *StatusError.
func Get(
	ctx context.Context,
	client HTTPClient,
	log *slog.Logger,
	baseURL string,
	params url.Values,
) ([]byte, error) {
	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	// appid is a secret
	log.DebugContext(ctx, "Upstream request", "host", reqURL.Host, "path", reqURL.Path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = redactURL(uerr.URL)
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.DebugContext(ctx, "Upstream API error", "status", resp.StatusCode, "body", string(body))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	log.DebugContext(ctx, "Upstream raw response", "body", string(body))

	return body, nil
}

// redactURL masks secretParams in raw. An unparsable URL is dropped entirely.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "<redacted>"
	}

	query := parsed.Query()
	for _, key := range secretParams {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
