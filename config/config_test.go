package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
geocoding:
  url: https://geocoding-api.open-meteo.com/v1/search
  count: 10
forecast:
  url: https://api.open-meteo.com/v1/forecast
  timezone: Europe/Oslo
default_location: Oslo
min_query_length: 3
http_timeout: 0s
log_level: warn
`

func TestLoad(t *testing.T) {
	cfg, err := Load([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", cfg.Geocoding.URL)
	assert.Equal(t, 10, cfg.Geocoding.Count)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Forecast.URL)
	assert.Equal(t, "Europe/Oslo", cfg.Forecast.Timezone)
	assert.Equal(t, "Oslo", cfg.DefaultLocation)
	assert.Equal(t, 3, cfg.MinQueryLength)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("WEATHER_FORECAST_TIMEZONE", "America/New_York")
	t.Setenv("WEATHER_GEOCODING_URL", "http://localhost:8081/v1/search")
	t.Setenv("WEATHER_DEFAULT_LOCATION", "Bergen")
	t.Setenv("WEATHER_HTTP_TIMEOUT", "5s")
	t.Setenv("WEATHER_LOG_LEVEL", "debug")

	cfg, err := Load([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "America/New_York", cfg.Forecast.Timezone)
	assert.Equal(t, "http://localhost:8081/v1/search", cfg.Geocoding.URL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.Forecast.URL)
	assert.Equal(t, "Bergen", cfg.DefaultLocation)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]func(t *testing.T){
		"bad timezone":   func(t *testing.T) { t.Setenv("WEATHER_FORECAST_TIMEZONE", "Mars/Olympus") },
		"bad url":        func(t *testing.T) { t.Setenv("WEATHER_FORECAST_URL", "not a url") },
		"zero min query": func(t *testing.T) { t.Setenv("WEATHER_MIN_QUERY_LENGTH", "0") },
		"bad log level":  func(t *testing.T) { t.Setenv("WEATHER_LOG_LEVEL", "verbose") },
		"bad duration":   func(t *testing.T) { t.Setenv("WEATHER_HTTP_TIMEOUT", "soon") },
	}

	for name, setup := range tests {
		t.Run(name, func(t *testing.T) {
			setup(t)

			_, err := Load([]byte(validYAML))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("geocoding: [\n"))
	assert.ErrorContains(t, err, "parse config")
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err := Load([]byte(validYAML))
	require.NoError(t, err, "no .env file")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD{KEY=1\n"), 0o600))
	_, err = Load([]byte(validYAML))
	assert.ErrorContains(t, err, "load .env")
}
