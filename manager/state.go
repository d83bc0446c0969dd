package manager

type Phase int

const (
	Idle Phase = iota
	Searching
	DropdownOpen
	LoadingForecast
	ForecastLoaded
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case DropdownOpen:
		return "dropdown-open"
	case LoadingForecast:
		return "loading-forecast"
	case ForecastLoaded:
		return "forecast-loaded"
	case Error:
		return "error"
	}
	return "unknown"
}

// State is everything the screen shows. Values are never mutated in place:
// Reduce always builds a new State and replaces slices wholesale.
type State struct {
	Phase           Phase
	LocationLabel   string
	SearchText      string
	Candidates      []Candidate
	Forecast        []DailyForecast
	DropdownVisible bool
	Notice          *Notice

	minQueryLength int
	// label of the location Forecast belongs to
	forecastLabel string
	searchSeq     uint64
	forecastSeq   uint64
}

// NewState returns the state before mount. The label starts at the default
// location so the screen is never blank while the first forecast loads.
func NewState(defaultLocation string, minQueryLength int) State {
	return State{
		Phase:          Idle,
		LocationLabel:  defaultLocation,
		forecastLabel:  defaultLocation,
		minQueryLength: minQueryLength,
	}
}

// Event is an input to Reduce: user intent or a network result.
type Event interface {
	event()
}

type (
	Mounted     struct{ Location string }
	TextChanged struct{ Text string }

	CandidateSelected struct{ Candidate Candidate }

	SearchSucceeded struct {
		Seq        uint64
		Candidates []Candidate
	}
	SearchFailed struct {
		Seq uint64
		Err error
	}

	ForecastSucceeded struct {
		Seq      uint64
		Label    string
		Forecast []DailyForecast
	}
	ForecastFailed struct {
		Seq uint64
		Err error
	}

	NoticeDismissed struct{}
)

func (Mounted) event()           {}
func (TextChanged) event()       {}
func (CandidateSelected) event() {}
func (SearchSucceeded) event()   {}
func (SearchFailed) event()      {}
func (ForecastSucceeded) event() {}
func (ForecastFailed) event()    {}
func (NoticeDismissed) event()   {}

// Command is network work Reduce asks the caller to perform.
type Command interface {
	command()
}

type SearchCommand struct {
	Seq   uint64
	Query string
}

// ForecastCommand loads the forecast for Coordinates, or for the first
// candidate of Name when Coordinates is nil.
type ForecastCommand struct {
	Seq         uint64
	Label       string
	Name        string
	Coordinates *Coordinates
}

func (SearchCommand) command()   {}
func (ForecastCommand) command() {}

// Reduce applies one event. Results carrying a sequence number older than
// the latest issued request of their kind leave the state untouched.
func Reduce(s State, e Event) (State, Command) {
	if stale(s, e) {
		return s, nil
	}

	switch e := e.(type) {
	case Mounted:
		location := e.Location
		if location == "" {
			location = s.LocationLabel
		}
		s.forecastSeq++
		s.LocationLabel = location
		s.Phase = LoadingForecast
		return s, ForecastCommand{Seq: s.forecastSeq, Label: location, Name: location}

	case TextChanged:
		s.SearchText = e.Text
		s.DropdownVisible = false
		s.searchSeq++
		if len([]rune(e.Text)) < s.minQueryLength {
			s.Phase = Idle
			return s, nil
		}
		s.Phase = Searching
		return s, SearchCommand{Seq: s.searchSeq, Query: e.Text}

	case SearchSucceeded:
		s.Candidates = e.Candidates
		s.DropdownVisible = true
		s.Phase = DropdownOpen
		return s, nil

	case SearchFailed:
		s.DropdownVisible = false
		s.Notice = searchNotice()
		s.Phase = Error
		return s, nil

	case CandidateSelected:
		c := e.Candidate
		coordinates := c.Coordinates()
		s.forecastSeq++
		// a search still in flight must not reopen the dropdown
		s.searchSeq++
		s.LocationLabel = c.Name
		s.SearchText = c.Name
		s.DropdownVisible = false
		s.Phase = LoadingForecast
		return s, ForecastCommand{Seq: s.forecastSeq, Label: c.Name, Coordinates: &coordinates}

	case ForecastSucceeded:
		s.Forecast = e.Forecast
		s.forecastLabel = e.Label
		s.LocationLabel = e.Label
		if s.Phase != Searching {
			s.Phase = s.settled()
		}
		return s, nil

	case ForecastFailed:
		s.LocationLabel = s.forecastLabel
		s.Notice = weatherNotice()
		s.Phase = Error
		return s, nil

	case NoticeDismissed:
		s.Notice = nil
		s.Phase = s.settled()
		return s, nil
	}

	return s, nil
}

func stale(s State, e Event) bool {
	switch e := e.(type) {
	case SearchSucceeded:
		return e.Seq != s.searchSeq
	case SearchFailed:
		return e.Seq != s.searchSeq
	case ForecastSucceeded:
		return e.Seq != s.forecastSeq
	case ForecastFailed:
		return e.Seq != s.forecastSeq
	}
	return false
}

// settled is the phase shown once nothing is pending.
func (s State) settled() Phase {
	switch {
	case s.DropdownVisible:
		return DropdownOpen
	case len(s.Forecast) > 0:
		return ForecastLoaded
	}
	return Idle
}
