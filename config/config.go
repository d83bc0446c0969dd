// Package config loads the screen settings: an embedded YAML document,
// overridden by WEATHER_* environment variables (optionally from a .env
// file), validated before use.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const envPrefix = "WEATHER"

type Config struct {
	Geocoding       GeocodingConfig `yaml:"geocoding"`
	Forecast        ForecastConfig  `yaml:"forecast"`
	DefaultLocation string          `yaml:"default_location" split_words:"true" validate:"required"`
	MinQueryLength  int             `yaml:"min_query_length" split_words:"true" validate:"min=1"`
	// zero means no timeout
	HTTPTimeout time.Duration `yaml:"http_timeout" split_words:"true"`
	LogLevel    string        `yaml:"log_level" split_words:"true" validate:"oneof=debug info warn error"`
}

type GeocodingConfig struct {
	URL      string `yaml:"url" validate:"required,url"`
	Count    int    `yaml:"count" validate:"min=0,max=100"`
	Language string `yaml:"language"`
}

type ForecastConfig struct {
	URL      string `yaml:"url" validate:"required,url"`
	Timezone string `yaml:"timezone" validate:"required,timezone"`
}

// Load parses raw, applies environment overrides and validates the result.
func Load(raw []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// a missing .env file is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
