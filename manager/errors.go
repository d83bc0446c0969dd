package manager

import "errors"

var (
	ErrGeocodeFetchFailed = errors.New("geocode fetch failed")
	ErrWeatherFetchFailed = errors.New("weather fetch failed")
	// ErrNoLocation is returned when a name used to drive a forecast
	// resolves to no candidates at all.
	ErrNoLocation = errors.New("no location found")
)

const (
	noticeTitle           = "Error"
	weatherFailureMessage = "Failed to load weather data"
	searchFailureMessage  = "Failed to load location data"
)

// Notice is a transient alert shown to the user.
type Notice struct {
	Title   string
	Message string
}

func weatherNotice() *Notice {
	return &Notice{Title: noticeTitle, Message: weatherFailureMessage}
}

func searchNotice() *Notice {
	return &Notice{Title: noticeTitle, Message: searchFailureMessage}
}
