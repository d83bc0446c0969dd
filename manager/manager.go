package manager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var errNotRunning = errors.New("screen is not running")

type Settings struct {
	DefaultLocation string
	MinQueryLength  int
	Logger          *slog.Logger
	// OnChange is called on the event loop after every event that was not
	// discarded as stale.
	OnChange func(State)
}

// Screen owns a State and drives the geocoding and weather clients from a
// single event loop. Network calls run on their own goroutines and post
// their results back as events.
type Screen struct {
	geocoding Geocoding
	weather   Weather
	logger    *slog.Logger
	onChange  func(State)

	events chan Event
	done   chan struct{}

	mu    sync.RWMutex
	state State

	// queued events plus commands whose result has not been applied
	pending int
	settled chan struct{}
}

func New(geocoding Geocoding, weather Weather, settings Settings) *Screen {
	logger := settings.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Screen{
		geocoding: geocoding,
		weather:   weather,
		logger:    logger,
		onChange:  settings.OnChange,
		events:    make(chan Event, 16),
		done:      make(chan struct{}),
		state:     NewState(settings.DefaultLocation, settings.MinQueryLength),
		pending:   1, // the mount applied by Run
		settled:   make(chan struct{}),
	}
}

// State returns a snapshot of the current state.
func (s *Screen) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Settled returns a channel that is closed once every dispatched event has
// been applied and every request it started has reported back.
func (s *Screen) Settled() <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settled
}

// Dispatch queues an event for the loop. It fails once Run has returned.
func (s *Screen) Dispatch(e Event) error {
	select {
	case <-s.done:
		return errNotRunning
	default:
	}

	s.begin()
	select {
	case s.events <- e:
		return nil
	case <-s.done:
		s.end()
		return errNotRunning
	}
}

func (s *Screen) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == 0 {
		s.settled = make(chan struct{})
	}
	s.pending++
}

func (s *Screen) end() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending--
	if s.pending == 0 {
		close(s.settled)
	}
}

// Run mounts the screen, which loads the default location, and processes
// events until ctx is done.
func (s *Screen) Run(ctx context.Context) error {
	defer close(s.done)

	s.apply(ctx, Mounted{})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-s.events:
			s.apply(ctx, e)
		}
	}
}

func (s *Screen) apply(ctx context.Context, e Event) {
	defer s.end()

	s.mu.Lock()
	current := s.state
	if stale(current, e) {
		s.mu.Unlock()
		s.logger.Debug("discarding stale response", "event", fmt.Sprintf("%T", e))
		return
	}
	next, cmd := Reduce(current, e)
	s.state = next
	s.mu.Unlock()

	s.logger.Debug("state changed", "event", fmt.Sprintf("%T", e), "phase", next.Phase.String())

	if s.onChange != nil {
		s.onChange(next)
	}

	if cmd != nil {
		s.begin()
		go s.execute(ctx, cmd)
	}
}

func (s *Screen) execute(ctx context.Context, cmd Command) {
	var result Event

	switch c := cmd.(type) {
	case SearchCommand:
		candidates, err := s.geocoding.Search(ctx, c.Query)
		if err != nil {
			s.logger.Debug("search failed", "query", c.Query, "error", err)
			result = SearchFailed{Seq: c.Seq, Err: err}
		} else {
			result = SearchSucceeded{Seq: c.Seq, Candidates: candidates}
		}

	case ForecastCommand:
		forecast, err := s.loadForecast(ctx, c)
		if err != nil {
			s.logger.Debug("forecast failed", "location", c.Label, "error", err)
			result = ForecastFailed{Seq: c.Seq, Err: err}
		} else {
			result = ForecastSucceeded{Seq: c.Seq, Label: c.Label, Forecast: forecast}
		}

	default:
		s.end()
		return
	}

	select {
	case s.events <- result:
	case <-s.done:
	}
}

func (s *Screen) loadForecast(ctx context.Context, c ForecastCommand) ([]DailyForecast, error) {
	if c.Coordinates != nil {
		return s.weather.Daily(ctx, *c.Coordinates)
	}

	candidates, err := s.geocoding.Search(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoLocation, c.Name)
	}

	return s.weather.Daily(ctx, candidates[0].Coordinates())
}
