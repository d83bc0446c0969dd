package cli

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"weathersearch/manager"
)

const temperatureUnit = "°C"

// DisplayTemperature is the mean of the day's max and min, rounded half up.
func DisplayTemperature(day manager.DailyForecast) string {
	mean := (day.TemperatureMax + day.TemperatureMin) / 2
	return fmt.Sprintf("%d%s", int(math.Floor(mean+0.5)), temperatureUnit)
}

func RenderDropdown(w io.Writer, candidates []manager.Candidate) {
	if len(candidates) == 0 {
		fmt.Fprintln(w, "  no matching locations")
		return
	}

	for i, candidate := range candidates {
		fmt.Fprintf(w, "  /%d  %s\n", i+1, candidate.Label())
	}
}

func RenderForecast(w io.Writer, label string, forecast []manager.DailyForecast) {
	fmt.Fprintf(w, "%s\n", label)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, day := range forecast {
		p := manager.Present(day.WeatherCode)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			day.Date,
			p.Description,
			manager.SecureURL(p.IconURL),
			DisplayTemperature(day),
		)
	}
	_ = tw.Flush()
}

func RenderNotice(w io.Writer, notice *manager.Notice) {
	fmt.Fprintf(w, "%s: %s\n", notice.Title, notice.Message)
}

// Render prints what changed for the phase the screen just entered.
func Render(w io.Writer, state manager.State) {
	switch state.Phase {
	case manager.DropdownOpen:
		RenderDropdown(w, state.Candidates)
	case manager.LoadingForecast:
		fmt.Fprintf(w, "loading %s...\n", state.LocationLabel)
	case manager.ForecastLoaded:
		RenderForecast(w, state.LocationLabel, state.Forecast)
	case manager.Error:
		if state.Notice != nil {
			RenderNotice(w, state.Notice)
		}
	}
}
