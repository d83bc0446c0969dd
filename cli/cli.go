package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"weathersearch/config"
	"weathersearch/manager"
)

const (
	selectPrefix = "/"
	quitCommand  = "/q"
)

type Deps struct {
	Geocoding manager.Geocoding
	Weather   manager.Weather
	Config    *config.Config
	Logger    *slog.Logger
}

func New(deps Deps) (*cobra.Command, error) {
	if deps.Geocoding == nil || deps.Weather == nil {
		return nil, errors.New("geocoding and weather clients are required")
	}
	if deps.Config == nil {
		return nil, errors.New("config is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	cmd := &cobra.Command{
		Use:   "weather",
		Args:  cobra.NoArgs,
		Short: "Search a location and show its daily forecast",
		Long: "Type a location name (at least " + strconv.Itoa(deps.Config.MinQueryLength) +
			" characters) to search, /N to pick the Nth match, /q to quit.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return interactive(cmd, deps)
		},
	}

	cmd.AddCommand(searchCommand(deps), forecastCommand(deps))

	return cmd, nil
}

func searchCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Args:  cobra.ExactArgs(1),
		Short: "List locations matching a name",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if len([]rune(query)) < deps.Config.MinQueryLength {
				return fmt.Errorf("query %q is shorter than %d characters", query, deps.Config.MinQueryLength)
			}

			candidates, err := deps.Geocoding.Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				cmd.Printf("no matching locations\n")
				return nil
			}

			for _, candidate := range candidates {
				cmd.Printf("%d\t%s\t%s\t%s\t%.4f,%.4f\n",
					candidate.ID,
					candidate.Name,
					candidate.Label(),
					candidate.Country,
					candidate.Latitude,
					candidate.Longitude,
				)
			}

			return nil
		},
	}
}

func forecastCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "forecast [location]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Show the daily forecast for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			location := deps.Config.DefaultLocation
			if len(args) == 1 {
				location = args[0]
			}

			s := start(cmd.Context(), deps, location, nil)
			defer s.stop()

			state := s.settle()
			if state.Notice != nil {
				return errors.New(state.Notice.Message)
			}

			RenderForecast(cmd.OutOrStdout(), state.LocationLabel, state.Forecast)

			return nil
		},
	}
}

func interactive(cmd *cobra.Command, deps Deps) error {
	out := cmd.OutOrStdout()

	s := start(cmd.Context(), deps, deps.Config.DefaultLocation, func(state manager.State) {
		Render(out, state)
	})
	defer s.stop()

	s.settle()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == quitCommand {
			break
		}

		if s.screen.State().Notice != nil {
			s.dispatch(manager.NoticeDismissed{})
		}

		event, err := parseInput(line, s.screen.State())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		s.dispatch(event)
	}
	fmt.Fprintln(out)

	return scanner.Err()
}

// parseInput turns a prompt line into an event: /N selects from the open
// dropdown, anything else is new search text.
func parseInput(line string, state manager.State) (manager.Event, error) {
	index, ok := strings.CutPrefix(line, selectPrefix)
	if !ok {
		return manager.TextChanged{Text: line}, nil
	}

	if !state.DropdownVisible {
		return nil, errors.New("no locations to pick from")
	}

	n, err := strconv.Atoi(index)
	if err != nil || n < 1 || n > len(state.Candidates) {
		return nil, fmt.Errorf("pick a location between /1 and /%d", len(state.Candidates))
	}

	return manager.CandidateSelected{Candidate: state.Candidates[n-1]}, nil
}

type session struct {
	screen *manager.Screen
	done   <-chan struct{}
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

func start(ctx context.Context, deps Deps, location string, render func(manager.State)) *session {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	s := &session{
		screen: manager.New(deps.Geocoding, deps.Weather, manager.Settings{
			DefaultLocation: location,
			MinQueryLength:  deps.Config.MinQueryLength,
			Logger:          deps.Logger,
			OnChange:        render,
		}),
		done:   ctx.Done(),
		cancel: cancel,
		logger: deps.Logger,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.screen.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("screen stopped", "error", err)
		}
	}()

	return s
}

// dispatch queues e and waits until the screen has settled again.
func (s *session) dispatch(e manager.Event) manager.State {
	if err := s.screen.Dispatch(e); err != nil {
		s.logger.Debug("dispatch", "error", err)
	}
	return s.settle()
}

// settle blocks until no event or request is pending.
func (s *session) settle() manager.State {
	select {
	case <-s.screen.Settled():
	case <-s.done:
	}
	return s.screen.State()
}

func (s *session) stop() {
	s.cancel()
	s.wg.Wait()
}
