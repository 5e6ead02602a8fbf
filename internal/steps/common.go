package steps

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
)

func (s *Steps) registerCommon(sc *godog.ScenarioContext) {
	sc.Step(`^the booking API is running$`, s.theBookingAPIIsRunning)
	sc.Step(`^the response status code should be (\d+)$`, s.theResponseStatusCodeShouldBe)
}

func (s *Steps) theBookingAPIIsRunning(ctx context.Context) error {
	ex, err := s.bookings.Health(ctx)
	if err != nil {
		return fmt.Errorf("API health check failed, is %s reachable? %w", s.cfg.BaseURL(), err)
	}
	if ex.StatusCode != http.StatusOK {
		return fmt.Errorf("API health check failed, is the environment reachable? Got status %d", ex.StatusCode)
	}
	return nil
}

func (s *Steps) theResponseStatusCodeShouldBe(ctx context.Context, expected int) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	ex, err := lastResponse(sc)
	if err != nil {
		return err
	}
	return check(func(t assert.TestingT) bool {
		return assert.Equal(t, expected, ex.StatusCode,
			"Expected HTTP %d but got %d.\nResponse body:\n%s", expected, ex.StatusCode, ex.Pretty())
	})
}
