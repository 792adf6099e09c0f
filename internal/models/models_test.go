package models_test

import (
	"encoding/json"
	"testing"

	"github.com/UnknownOlympus/nimbus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	t.Parallel()

	t.Run("with country", func(t *testing.T) {
		t.Parallel()
		loc := models.Location{City: "New York", Country: "us"}

		assert.Equal(t, "New York,us", loc.Query())
		assert.Equal(t, "New York, us", loc.String())
	})

	t.Run("without country", func(t *testing.T) {
		t.Parallel()
		loc := models.Location{City: "Kyiv"}

		assert.Equal(t, "Kyiv", loc.Query())
		assert.Equal(t, "Kyiv", loc.String())
	})
}

func TestCoordinates_Strings(t *testing.T) {
	t.Parallel()
	coords := models.Coordinates{Latitude: 40.7, Longitude: -74}

	assert.Equal(t, "40.7", coords.LatString())
	assert.Equal(t, "-74", coords.LonString())
}

func TestForecastEntry(t *testing.T) {
	t.Parallel()

	t.Run("well-formed entry", func(t *testing.T) {
		t.Parallel()
		var entry models.ForecastEntry
		err := json.Unmarshal(
			[]byte(`{"dt_txt":"2024-01-01 12:00:00","main":{"temp":32.5},"weather":[{"description":"clear sky"}]}`),
			&entry,
		)
		require.NoError(t, err)

		ts, err := entry.Time()
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01 12:00:00", ts)

		temp, err := entry.TemperatureString()
		require.NoError(t, err)
		assert.Equal(t, "32.5", temp)

		desc, err := entry.Description()
		require.NoError(t, err)
		assert.Equal(t, "clear sky", desc)
	})

	t.Run("zero temperature is not missing", func(t *testing.T) {
		t.Parallel()
		var entry models.ForecastEntry
		require.NoError(t, json.Unmarshal([]byte(`{"main":{"temp":0}}`), &entry))

		temp, err := entry.Temperature()
		require.NoError(t, err)
		assert.Zero(t, temp)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		var entry models.ForecastEntry
		require.NoError(t, json.Unmarshal([]byte(`{"main":{},"weather":[]}`), &entry))

		_, err := entry.Time()
		require.ErrorIs(t, err, models.ErrMalformedEntry)
		assert.ErrorContains(t, err, "dt_txt")

		_, err = entry.Temperature()
		require.ErrorIs(t, err, models.ErrMalformedEntry)
		assert.ErrorContains(t, err, "main.temp")

		_, err = entry.Description()
		require.ErrorIs(t, err, models.ErrMalformedEntry)
		assert.ErrorContains(t, err, "weather[0]")
	})

	t.Run("empty timestamp is not missing", func(t *testing.T) {
		t.Parallel()
		var entry models.ForecastEntry
		require.NoError(t, json.Unmarshal([]byte(`{"dt_txt":""}`), &entry))

		ts, err := entry.Time()
		require.NoError(t, err)
		assert.Empty(t, ts)
	})

	t.Run("missing main block", func(t *testing.T) {
		t.Parallel()
		ts := "2024-01-01 12:00:00"
		entry := models.ForecastEntry{Timestamp: &ts}

		_, err := entry.TemperatureString()
		require.ErrorIs(t, err, models.ErrMalformedEntry)
		assert.ErrorContains(t, err, "missing main")
	})
}
