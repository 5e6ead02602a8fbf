package steps

import (
	"io"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/report"
)

// SuiteName names the godog suite in reports
const SuiteName = "booking-acceptance"

// RunOptions selects which features run and how results are printed
type RunOptions struct {
	Paths       []string
	Tags        string
	Format      string
	Concurrency int
	Strict      bool
	Randomize   int64
	Output      io.Writer
	// TestingT makes each scenario a subtest; nil for standalone runs
	TestingT *testing.T
}

// NewSuite builds a godog suite running the features against cfg
func NewSuite(cfg *config.Config, sink report.Sink, opts RunOptions) godog.TestSuite {
	steps := New(cfg, sink)

	if len(opts.Paths) == 0 {
		opts.Paths = []string{"features"}
	}
	if opts.Format == "" {
		opts.Format = "pretty"
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	godogOpts := &godog.Options{
		Format:      opts.Format,
		Paths:       opts.Paths,
		Tags:        opts.Tags,
		Concurrency: opts.Concurrency,
		Strict:      opts.Strict,
		Randomize:   opts.Randomize,
		TestingT:    opts.TestingT,
	}
	if opts.Output != nil {
		godogOpts.Output = colors.Uncolored(opts.Output)
	}

	return godog.TestSuite{
		Name:                SuiteName,
		ScenarioInitializer: steps.InitializeScenario,
		Options:             godogOpts,
	}
}
