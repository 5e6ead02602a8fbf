// Package steps binds the feature-file vocabulary to the booking clients.
//
// One Steps value serves every scenario of a run. Per-scenario data lives in
// the hooks.Scenario carried by the step context, so scenarios can run
// concurrently.
package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/hooks"
	"github.com/celestiaorg/booking-acceptance/internal/report"
	"github.com/celestiaorg/booking-acceptance/internal/state"
)

// ErrNoScenario is returned by a step running outside the lifecycle hooks
var ErrNoScenario = errors.New("steps: no scenario in context")

// Steps holds the collaborators shared by all scenarios
type Steps struct {
	cfg      *config.Config
	coord    *hooks.Coordinator
	auth     *client.AuthClient
	bookings *client.BookingClient
	sink     report.Sink
}

// New creates the step bindings for the environment in cfg. A nil sink
// reports through the logger.
func New(cfg *config.Config, sink report.Sink) *Steps {
	if sink == nil {
		sink = report.NewLogSink()
	}
	auth := client.NewAuthClient(cfg)
	bookings := client.NewBookingClient(cfg)
	return &Steps{
		cfg:      cfg,
		coord:    hooks.New(cfg, auth, bookings, sink),
		auth:     auth,
		bookings: bookings,
		sink:     sink,
	}
}

// Coordinator returns the lifecycle coordinator driving the scenarios
func (s *Steps) Coordinator() *hooks.Coordinator {
	return s.coord
}

// InitializeScenario registers the lifecycle hooks and every step
func (s *Steps) InitializeScenario(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, gs *godog.Scenario) (context.Context, error) {
		scenario := s.coord.Start(ctx, gs.Name)
		return hooks.WithScenario(ctx, scenario), nil
	})

	// a single After hook: diagnostics, teardown and end run in one fixed order
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if scenario, ok := hooks.FromContext(ctx); ok {
			s.coord.Finish(ctx, scenario, err != nil)
		}
		return ctx, nil
	})

	s.registerCommon(sc)
	s.registerAuth(sc)
	s.registerCreate(sc)
	s.registerRead(sc)
	s.registerModify(sc)
}

func scenarioFrom(ctx context.Context) (*hooks.Scenario, error) {
	sc, ok := hooks.FromContext(ctx)
	if !ok {
		return nil, ErrNoScenario
	}
	return sc, nil
}

// record stores the exchange as the scenario's last request and response.
// A request without a body clears the previous request body.
func record(sc *hooks.Scenario, ex *client.Exchange) {
	state.Set(sc.State, state.LastResponse, ex)
	if len(ex.RequestBody) > 0 {
		state.Set(sc.State, state.LastRequestBody, string(ex.RequestBody))
	} else {
		state.Delete(sc.State, state.LastRequestBody)
	}
}

func lastResponse(sc *hooks.Scenario) (*client.Exchange, error) {
	ex, err := state.Get(sc.State, state.LastResponse)
	if err != nil {
		return nil, fmt.Errorf("no request has been made yet: %w", err)
	}
	return ex, nil
}

func bookingID(sc *hooks.Scenario) (int, error) {
	id, err := state.Get(sc.State, state.BookingID)
	if err != nil {
		return 0, fmt.Errorf("no booking was created in this scenario: %w", err)
	}
	return id, nil
}

func authCookie(sc *hooks.Scenario) (client.RequestOption, error) {
	header, err := state.Get(sc.State, state.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("no authentication token; add \"I have a valid authentication token\": %w", err)
	}
	return client.WithCookie(header), nil
}
