package manager

import (
	"fmt"
	"strings"
)

const iconURLFormat = "http://openweathermap.org/img/wn/%s@2x.png"

const (
	UnknownDescription = "Unknown"
	placeholderIcon    = "50d"
)

type Presentation struct {
	Description string
	IconURL     string
}

type presentation struct {
	description string
	icon        string
}

var presentations = map[WeatherCode]presentation{
	0:  {"Sunny", "01d"},
	1:  {"Mainly Sunny", "01d"},
	2:  {"Partly Cloudy", "02d"},
	3:  {"Cloudy", "03d"},
	45: {"Foggy", "50d"},
	48: {"Rime Fog", "50d"},
	51: {"Light Drizzle", "09d"},
	53: {"Drizzle", "09d"},
	55: {"Heavy Drizzle", "09d"},
	56: {"Light Freezing Drizzle", "09d"},
	57: {"Freezing Drizzle", "09d"},
	61: {"Light Rain", "10d"},
	63: {"Rain", "10d"},
	65: {"Heavy Rain", "10d"},
	66: {"Light Freezing Rain", "10d"},
	67: {"Freezing Rain", "10d"},
	71: {"Light Snow", "13d"},
	73: {"Snow", "13d"},
	75: {"Heavy Snow", "13d"},
	77: {"Snow Grains", "13d"},
	80: {"Light Showers", "09d"},
	81: {"Showers", "09d"},
	82: {"Heavy Showers", "09d"},
	85: {"Light Snow Showers", "13d"},
	86: {"Snow Showers", "13d"},
	95: {"Thunderstorm", "11d"},
	96: {"Light Thunderstorms With Hail", "11d"},
	99: {"Thunderstorm With Hail", "11d"},
}

// Present maps a weather code to its description and icon. Codes outside
// the WMO table get UnknownDescription and a placeholder icon.
func Present(code WeatherCode) Presentation {
	p, ok := presentations[code]
	if !ok {
		p = presentation{description: UnknownDescription, icon: placeholderIcon}
	}

	return Presentation{
		Description: p.description,
		IconURL:     fmt.Sprintf(iconURLFormat, p.icon),
	}
}

// SecureURL upgrades an http:// URL to https://.
func SecureURL(u string) string {
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return "https://" + rest
	}
	return u
}
