// Package features runs the feature files as Go tests.
//
// By default the scenarios run against the in-process fake API. Set
// BOOKING_LIVE=1 to run them against the environment selected by
// BOOKING_ENV instead.
package features

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/report"
	"github.com/celestiaorg/booking-acceptance/internal/steps"
	"github.com/celestiaorg/booking-acceptance/test"
)

func TestFeatures(t *testing.T) {
	var (
		cfg *config.Config
		env *test.TestEnvironment
	)
	if os.Getenv("BOOKING_LIVE") == "" {
		env = test.NewTestEnvironment(t)
		cfg = env.Config
	} else {
		var err error
		cfg, err = config.Load("", "../config")
		require.NoError(t, err, "live run needs a valid environment file")
	}

	recorder := report.NewRecorder()
	suite := steps.NewSuite(cfg, report.Multi(report.NewLogSink(), recorder), steps.RunOptions{
		Paths:    []string{"."},
		Format:   "progress",
		Strict:   true,
		TestingT: t,
	})

	require.Zero(t, suite.Run(), "non-zero status returned, failed to run feature tests")
	assert.Empty(t, recorder.Attachments(), "diagnostics are only attached for failed scenarios")

	if env != nil {
		// every booking a scenario created was removed by teardown or by the scenario
		assert.Zero(t, env.BookingCount())
	}
}
