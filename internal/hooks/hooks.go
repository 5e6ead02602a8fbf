// Package hooks drives the lifecycle of a scenario.
//
// A scenario moves through a fixed sequence of stages:
//
//	Start -> Run -> DiagnosticCapture -> Teardown -> End
//
// Run belongs to the step bindings. The coordinator owns the other stages and
// always executes DiagnosticCapture before Teardown, so failure diagnostics see
// the state as the scenario left it, before any cleanup touches the API.
package hooks

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/logger"
	"github.com/celestiaorg/booking-acceptance/internal/report"
	"github.com/celestiaorg/booking-acceptance/internal/state"
)

// Stage is a named step of the scenario lifecycle
type Stage string

// Lifecycle stages in execution order
const (
	StageStart             Stage = "start"
	StageRun               Stage = "run"
	StageDiagnosticCapture Stage = "diagnostic-capture"
	StageTeardown          Stage = "teardown"
	StageEnd               Stage = "end"
)

// Attachment names used by DiagnosticCapture
const (
	AttachmentRequestBody  = "API Request Body"
	AttachmentStatusCode   = "API Status Code"
	AttachmentResponseBody = "API Response Body"
)

var lifecycle = []Stage{
	StageStart,
	StageRun,
	StageDiagnosticCapture,
	StageTeardown,
	StageEnd,
}

// Stages returns the lifecycle in execution order
func Stages() []Stage {
	return slices.Clone(lifecycle)
}

// Scenario is one execution of a test case with its own isolated state
type Scenario struct {
	ID      string
	Name    string
	State   *state.State
	Started time.Time

	mu     sync.Mutex
	stage  Stage
	failed bool
}

// Stage returns the stage the scenario is currently in
func (s *Scenario) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stage
}

// Failed reports the outcome passed to Finish
func (s *Scenario) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

func (s *Scenario) enter(stage Stage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stage = stage
}

func (s *Scenario) fields() map[string]interface{} {
	return map[string]interface{}{
		"scenario":    s.Name,
		"scenario_id": s.ID,
	}
}

// finishStage is one post-run stage with the function executing it
type finishStage struct {
	stage Stage
	run   func(ctx context.Context, sc *Scenario)
}

// Coordinator composes scenario state and the API clients into the lifecycle.
// It holds no per-scenario data and is safe for concurrent use.
type Coordinator struct {
	cfg      *config.Config
	auth     *client.AuthClient
	bookings *client.BookingClient
	sink     report.Sink

	// after Run, in this order
	finish []finishStage
}

// New creates a Coordinator. A nil sink reports through the logger.
func New(cfg *config.Config, auth *client.AuthClient, bookings *client.BookingClient, sink report.Sink) *Coordinator {
	if sink == nil {
		sink = report.NewLogSink()
	}
	c := &Coordinator{
		cfg:      cfg,
		auth:     auth,
		bookings: bookings,
		sink:     sink,
	}
	c.finish = []finishStage{
		{stage: StageDiagnosticCapture, run: c.captureDiagnostics},
		{stage: StageTeardown, run: c.teardown},
		{stage: StageEnd, run: c.end},
	}
	return c
}

// Start begins a scenario: it allocates a fresh State and announces the
// scenario. It has no side effects on the API.
func (c *Coordinator) Start(_ context.Context, name string) *Scenario {
	sc := &Scenario{
		ID:      uuid.NewString(),
		Name:    name,
		State:   state.New(),
		Started: time.Now(),
		stage:   StageStart,
	}
	c.sink.Step("Starting scenario: " + name)
	logger.DebugWithFields("Scenario started", sc.fields())
	sc.enter(StageRun)
	return sc
}

// Finish runs DiagnosticCapture, Teardown and End in that order. It never
// fails: problems in any stage are logged and do not change the outcome.
func (c *Coordinator) Finish(ctx context.Context, sc *Scenario, failed bool) {
	if sc == nil {
		return
	}
	sc.mu.Lock()
	sc.failed = failed
	sc.mu.Unlock()

	// cleanup still has to run when the scenario's context was canceled
	ctx = context.WithoutCancel(ctx)
	for _, st := range c.finish {
		c.runStage(ctx, sc, st)
	}
}

// Run executes fn as the Run stage of a new scenario and finishes it. The
// error of fn is returned unchanged whatever happens during cleanup.
func (c *Coordinator) Run(ctx context.Context, name string, fn func(ctx context.Context, sc *Scenario) error) error {
	sc := c.Start(ctx, name)
	failed := true
	defer func() {
		c.Finish(ctx, sc, failed)
	}()

	err := fn(WithScenario(ctx, sc), sc)
	failed = err != nil
	return err
}

func (c *Coordinator) runStage(ctx context.Context, sc *Scenario, st finishStage) {
	defer func() {
		if r := recover(); r != nil {
			fields := sc.fields()
			fields["stage"] = string(st.stage)
			fields["panic"] = fmt.Sprint(r)
			logger.ErrorWithFields("Lifecycle stage panicked", fields)
		}
	}()
	sc.enter(st.stage)
	st.run(ctx, sc)
}

// captureDiagnostics attaches the last request and response of a failed scenario
func (c *Coordinator) captureDiagnostics(_ context.Context, sc *Scenario) {
	if !sc.Failed() {
		return
	}
	if body, ok := state.Lookup(sc.State, state.LastRequestBody); ok {
		c.sink.Attach(AttachmentRequestBody, report.ContentTypeJSON, []byte(body))
	}
	if ex, ok := state.Lookup(sc.State, state.LastResponse); ok && ex != nil {
		c.sink.Attach(AttachmentStatusCode, report.ContentTypeText, []byte(fmt.Sprint(ex.StatusCode)))
		c.sink.Attach(AttachmentResponseBody, report.ContentTypeJSON, []byte(ex.Pretty()))
	}
}

// teardown deletes the booking the scenario created. Without a token of its
// own the scenario gets one admin token; if that fails nothing is deleted.
func (c *Coordinator) teardown(ctx context.Context, sc *Scenario) {
	bookingID, ok := state.Lookup(sc.State, state.BookingID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	header, ok := state.Lookup(sc.State, state.AuthToken)
	if !ok {
		header, ok = c.adminCookie(ctx, sc)
		if !ok {
			return
		}
	}

	fields := sc.fields()
	fields["booking_id"] = bookingID

	ex, err := c.bookings.DeleteBooking(ctx, bookingID, client.WithCookie(header))
	if err != nil {
		fields["error"] = err.Error()
		logger.WarnWithFields("Teardown delete failed", fields)
		return
	}
	if !ex.IsSuccess() {
		fields["status"] = ex.StatusCode
		logger.WarnWithFields("Teardown delete rejected", fields)
		return
	}
	c.sink.Step(fmt.Sprintf("Teardown: deleted booking ID %d", bookingID))
}

// adminCookie requests exactly one admin token
func (c *Coordinator) adminCookie(ctx context.Context, sc *Scenario) (string, bool) {
	header, ex, err := c.auth.AdminToken(ctx, c.cfg)
	if err != nil {
		fields := sc.fields()
		fields["error"] = err.Error()
		logger.WarnWithFields("Teardown token request failed", fields)
		return "", false
	}
	if header == "" {
		fields := sc.fields()
		fields["status"] = ex.StatusCode
		if ex.StatusCode == http.StatusOK {
			fields["reason"] = "blank token"
		}
		logger.WarnWithFields("Teardown token request rejected", fields)
		return "", false
	}
	return header, true
}

// end discards the scenario state
func (c *Coordinator) end(_ context.Context, sc *Scenario) {
	sc.State.Clear()
	fields := sc.fields()
	fields["failed"] = sc.Failed()
	fields["duration"] = time.Since(sc.Started)
	logger.DebugWithFields("Scenario finished", fields)
}

type scenarioKey struct{}

// WithScenario returns a context carrying sc
func WithScenario(ctx context.Context, sc *Scenario) context.Context {
	return context.WithValue(ctx, scenarioKey{}, sc)
}

// FromContext returns the scenario carried by ctx
func FromContext(ctx context.Context) (*Scenario, bool) {
	sc, ok := ctx.Value(scenarioKey{}).(*Scenario)
	return sc, ok && sc != nil
}
