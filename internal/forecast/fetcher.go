// Package forecast fetches multi-day forecasts for a pair of coordinates.
package forecast

import (
	"context"

	"github.com/UnknownOlympus/nimbus/internal/models"
)

// Units is the only unit system requested from the provider.
const Units = "imperial"

// TemperatureSymbol is the temperature unit matching Units.
const TemperatureSymbol = "F"

// Language of the weather descriptions.
const Language = "en"

// Fetcher returns the forecast for the given coordinates.
type Fetcher interface {
	Forecast(ctx context.Context, coords models.Coordinates) (*models.Forecast, error)
}
