package geocoding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"weathersearch/manager"
)

type Config struct {
	URL      string
	Count    int
	Language string
	Timeout  time.Duration
}

func New(config Config) *geocoding {
	client := resty.New()
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &geocoding{
		client:   client,
		url:      config.URL,
		count:    config.Count,
		language: config.Language,
	}
}

type geocoding struct {
	client   *resty.Client
	url      string
	count    int
	language string
}

// Search returns the candidates for name in the order the service ranks them.
func (g geocoding) Search(ctx context.Context, name string) ([]manager.Candidate, error) {
	params := map[string]string{
		"name": name,
	}
	if g.count > 0 {
		params["count"] = strconv.Itoa(g.count)
	}
	if g.language != "" {
		params["language"] = g.language
	}

	candidates, err := g.processRequest(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", manager.ErrGeocodeFetchFailed, name, err)
	}

	return candidates, nil
}

func (g geocoding) processRequest(ctx context.Context, params map[string]string) ([]manager.Candidate, error) {
	type responseStruct struct {
		Results []struct {
			ID        int64   `json:"id"`
			Name      string  `json:"name"`
			Admin1    string  `json:"admin1"`
			Admin2    string  `json:"admin2"`
			Country   string  `json:"country"`
			Timezone  string  `json:"timezone"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}

	request := g.client.R().SetContext(ctx)
	request.SetQueryParams(params)

	response, err := request.Get(g.url)
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

	var r responseStruct
	if err = json.Unmarshal(response.Body(), &r); err != nil {
		return nil, err
	}

	candidates := make([]manager.Candidate, 0, len(r.Results))
	for _, result := range r.Results {
		candidates = append(candidates, manager.Candidate{
			ID:        result.ID,
			Name:      result.Name,
			Admin1:    result.Admin1,
			Admin2:    result.Admin2,
			Country:   result.Country,
			Timezone:  result.Timezone,
			Latitude:  result.Latitude,
			Longitude: result.Longitude,
		})
	}

	return candidates, nil
}
