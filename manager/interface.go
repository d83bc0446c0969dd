package manager

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type Geocoding interface {
	Search(ctx context.Context, name string) ([]Candidate, error)
}

type Weather interface {
	Daily(ctx context.Context, coordinates Coordinates) ([]DailyForecast, error)
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Candidate is one location match returned by a geocoding lookup.
type Candidate struct {
	ID        int64
	Name      string
	Admin1    string
	Admin2    string
	Country   string
	Timezone  string
	Latitude  float64
	Longitude float64
}

// Label is the text shown for the candidate in the dropdown.
func (c Candidate) Label() string {
	return fmt.Sprintf("%s,%s", c.Admin1, c.Admin2)
}

func (c Candidate) Coordinates() Coordinates {
	return Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
}

type DailyForecast struct {
	Date           string
	TemperatureMax float64
	TemperatureMin float64
	WeatherCode    WeatherCode
}

// WeatherCode is a WMO weather interpretation code.
type WeatherCode int

var errMissingWeatherCode = errors.New("weather code is null")

// UnmarshalJSON accepts both 3 and "3". A null code is an error.
func (c *WeatherCode) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return errMissingWeatherCode
	}

	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*c = WeatherCode(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("weather code: %s", data)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("weather code %q: %w", s, err)
	}
	*c = WeatherCode(n)

	return nil
}
