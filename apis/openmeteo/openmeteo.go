package openmeteo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"weathersearch/manager"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,weathercode"

var errIncompleteDaily = errors.New("incomplete daily data")

type Config struct {
	URL      string
	Timezone string
	Timeout  time.Duration
}

func New(config Config) *weatherApi {
	client := resty.New()
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &weatherApi{
		client:   client,
		url:      config.URL,
		timezone: config.Timezone,
	}
}

type weatherApi struct {
	client   *resty.Client
	url      string
	timezone string
}

// Daily returns one forecast per day for the provider's default horizon,
// localized to the configured timezone.
func (w weatherApi) Daily(ctx context.Context, coordinates manager.Coordinates) ([]manager.DailyForecast, error) {
	params := map[string]string{
		"latitude":  strconv.FormatFloat(coordinates.Latitude, 'f', -1, 64),
		"longitude": strconv.FormatFloat(coordinates.Longitude, 'f', -1, 64),
		"daily":     dailyFields,
		"timezone":  w.timezone,
	}

	forecast, err := w.processRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s,%s: %w",
			manager.ErrWeatherFetchFailed, params["latitude"], params["longitude"], err)
	}

	return forecast, nil
}

func (w weatherApi) processRequest(ctx context.Context, params map[string]string) ([]manager.DailyForecast, error) {
	request := w.client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(w.url)
	if err != nil {
		return nil, err
	}

	if response.StatusCode() != http.StatusOK {
		buf := &bytes.Buffer{}

		if err = json.Indent(buf, response.Body(), "", "  "); err != nil {
			return nil, fmt.Errorf("status code: %d", response.StatusCode())
		}

		return nil, fmt.Errorf("status code: %d\n%s", response.StatusCode(), buf.String())
	}

	var i info
	if err = i.unmarshal(response.Body()); err != nil {
		return nil, err
	}

	return i.forecast, nil
}

type info struct {
	forecast []manager.DailyForecast
}

func (i *info) unmarshal(data []byte) error {
	type result struct {
		Daily *struct {
			Time           []string              `json:"time"`
			TemperatureMax []*float64            `json:"temperature_2m_max"`
			TemperatureMin []*float64            `json:"temperature_2m_min"`
			WeatherCode    []manager.WeatherCode `json:"weathercode"`
		} `json:"daily"`
	}

	var r result

	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	if r.Daily == nil {
		return errIncompleteDaily
	}

	days := len(r.Daily.Time)
	if len(r.Daily.TemperatureMax) != days ||
		len(r.Daily.TemperatureMin) != days ||
		len(r.Daily.WeatherCode) != days {
		return fmt.Errorf("%w: %d days, %d max, %d min, %d codes", errIncompleteDaily,
			days, len(r.Daily.TemperatureMax), len(r.Daily.TemperatureMin), len(r.Daily.WeatherCode))
	}

	forecast := make([]manager.DailyForecast, 0, days)
	for day, date := range r.Daily.Time {
		high, low := r.Daily.TemperatureMax[day], r.Daily.TemperatureMin[day]
		if high == nil || low == nil {
			return fmt.Errorf("%w: missing temperature for %s", errIncompleteDaily, date)
		}

		forecast = append(forecast, manager.DailyForecast{
			Date:           date,
			TemperatureMax: *high,
			TemperatureMin: *low,
			WeatherCode:    r.Daily.WeatherCode[day],
		})
	}
	i.forecast = forecast

	return nil
}
