package steps

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/celestiaorg/booking-acceptance/internal/factory"
	"github.com/celestiaorg/booking-acceptance/internal/state"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

func (s *Steps) registerAuth(sc *godog.ScenarioContext) {
	sc.Step(`^I request a token with username "([^"]*)" and password "([^"]*)"$`, s.iRequestATokenWith)
	sc.Step(`^I request a token with username "([^"]*)" and no password$`, s.iRequestATokenWithoutPassword)
	sc.Step(`^the response should contain a non-empty token$`, s.theResponseShouldContainANonEmptyToken)
	sc.Step(`^I have a valid authentication token$`, s.iHaveAValidAuthenticationToken)
}

func (s *Steps) iRequestATokenWith(ctx context.Context, username, password string) error {
	return s.requestToken(ctx, types.TokenRequest{Username: username, Password: password})
}

func (s *Steps) iRequestATokenWithoutPassword(ctx context.Context, username string) error {
	return s.requestToken(ctx, factory.TokenRequestWithoutPassword(username))
}

func (s *Steps) requestToken(ctx context.Context, credentials types.TokenPayload) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	ex, err := s.auth.CreateToken(ctx, credentials)
	if err != nil {
		return err
	}
	record(sc, ex)
	return nil
}

func (s *Steps) theResponseShouldContainANonEmptyToken(ctx context.Context) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	ex, err := lastResponse(sc)
	if err != nil {
		return err
	}
	var body types.TokenResponse
	if err := ex.Decode(&body); err != nil {
		return err
	}
	if strings.TrimSpace(body.Token) == "" {
		return fmt.Errorf("expected a token in the response, got %s", ex.Text())
	}
	return nil
}

// iHaveAValidAuthenticationToken logs in as admin and keeps the Cookie header
func (s *Steps) iHaveAValidAuthenticationToken(ctx context.Context) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	header, ex, err := s.auth.AdminToken(ctx, s.cfg)
	if err != nil {
		return err
	}
	if ex.StatusCode != http.StatusOK {
		return fmt.Errorf("background auth token generation failed: status %d", ex.StatusCode)
	}
	if header == "" {
		return fmt.Errorf("auth token was blank")
	}
	state.Set(sc.State, state.AuthToken, header)
	return nil
}
