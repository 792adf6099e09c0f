package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedEntry is returned when a forecast entry lacks an expected field.
var ErrMalformedEntry = errors.New("malformed forecast entry")

// Forecast is the provider payload: entries ordered by timestamp ascending.
type Forecast struct {
	List []ForecastEntry `json:"list"`
}

// ForecastEntry is one timestamped prediction in the provider's list.
// Fields stay optional so a partially filled entry can be detected.
type ForecastEntry struct {
	Timestamp *string     `json:"dt_txt"`
	Main      *MainValues `json:"main"`
	Weather   []Condition `json:"weather"`
}

// MainValues holds the "main" block of an entry.
type MainValues struct {
	Temp *float64 `json:"temp"`
}

// Condition is a single weather condition of an entry.
type Condition struct {
	Description *string `json:"description"`
}

// Time returns the entry timestamp text.
func (e ForecastEntry) Time() (string, error) {
	if e.Timestamp == nil {
		return "", fmt.Errorf("%w: missing dt_txt", ErrMalformedEntry)
	}

	return *e.Timestamp, nil
}

// Temperature returns main.temp in the configured unit system.
func (e ForecastEntry) Temperature() (float64, error) {
	if e.Main == nil {
		return 0, fmt.Errorf("%w: missing main", ErrMalformedEntry)
	}
	if e.Main.Temp == nil {
		return 0, fmt.Errorf("%w: missing main.temp", ErrMalformedEntry)
	}

	return *e.Main.Temp, nil
}

// TemperatureString formats the temperature with the shortest exact representation.
func (e ForecastEntry) TemperatureString() (string, error) {
	temp, err := e.Temperature()
	if err != nil {
		return "", err
	}

	return strconv.FormatFloat(temp, 'f', -1, 64), nil
}

// Description returns weather[0].description.
func (e ForecastEntry) Description() (string, error) {
	if len(e.Weather) == 0 {
		return "", fmt.Errorf("%w: missing weather[0]", ErrMalformedEntry)
	}
	if e.Weather[0].Description == nil {
		return "", fmt.Errorf("%w: missing weather[0].description", ErrMalformedEntry)
	}

	return *e.Weather[0].Description, nil
}
