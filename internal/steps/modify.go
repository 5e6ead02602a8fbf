package steps

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cucumber/godog"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/factory"
	"github.com/celestiaorg/booking-acceptance/internal/state"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

func (s *Steps) registerModify(sc *godog.ScenarioContext) {
	sc.Step(`^I update the booking with firstname "([^"]*)"$`, s.iUpdateTheBookingWithFirstname)
	sc.Step(`^I update the booking without an auth token$`, s.iUpdateTheBookingWithoutAuth)
	sc.Step(`^I partially update the booking with firstname "([^"]*)"$`, s.iPartiallyUpdateTheBooking)
	sc.Step(`^I delete the booking$`, s.iDeleteTheBooking)
	sc.Step(`^I delete the booking without an auth token$`, s.iDeleteTheBookingWithoutAuth)
	sc.Step(`^the booking should no longer exist$`, s.theBookingShouldNoLongerExist)
}

func (s *Steps) iUpdateTheBookingWithFirstname(ctx context.Context, firstname string) error {
	return s.withBooking(ctx, true, func(id int, opts ...client.RequestOption) (*client.Exchange, error) {
		return s.bookings.UpdateBooking(ctx, id, factory.BookingWithFirstname(firstname), opts...)
	})
}

func (s *Steps) iUpdateTheBookingWithoutAuth(ctx context.Context) error {
	return s.withBooking(ctx, false, func(id int, opts ...client.RequestOption) (*client.Exchange, error) {
		return s.bookings.UpdateBooking(ctx, id, factory.ValidBooking(), opts...)
	})
}

func (s *Steps) iPartiallyUpdateTheBooking(ctx context.Context, firstname string) error {
	return s.withBooking(ctx, true, func(id int, opts ...client.RequestOption) (*client.Exchange, error) {
		return s.bookings.PartialUpdateBooking(ctx, id, types.RawPayload{"firstname": firstname}, opts...)
	})
}

func (s *Steps) iDeleteTheBooking(ctx context.Context) error {
	return s.withBooking(ctx, true, func(id int, opts ...client.RequestOption) (*client.Exchange, error) {
		return s.bookings.DeleteBooking(ctx, id, opts...)
	})
}

func (s *Steps) iDeleteTheBookingWithoutAuth(ctx context.Context) error {
	return s.withBooking(ctx, false, func(id int, opts ...client.RequestOption) (*client.Exchange, error) {
		return s.bookings.DeleteBooking(ctx, id, opts...)
	})
}

// theBookingShouldNoLongerExist reads the booking back and expects it gone.
// A confirmed delete leaves nothing for teardown.
func (s *Steps) theBookingShouldNoLongerExist(ctx context.Context) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	err = s.withBooking(ctx, true, func(id int, opts ...client.RequestOption) (*client.Exchange, error) {
		return s.bookings.GetBooking(ctx, id, opts...)
	})
	if err != nil {
		return err
	}
	ex, err := lastResponse(sc)
	if err != nil {
		return err
	}
	if ex.StatusCode != http.StatusNotFound {
		return fmt.Errorf("expected the booking to be gone (HTTP %d) but got %d: %s", http.StatusNotFound, ex.StatusCode, ex.Text())
	}
	state.Delete(sc.State, state.BookingID)
	return nil
}

// withBooking runs call against the scenario's booking, with the scenario's
// token when authenticated is true, and records the exchange
func (s *Steps) withBooking(ctx context.Context, authenticated bool, call func(id int, opts ...client.RequestOption) (*client.Exchange, error)) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	id, err := bookingID(sc)
	if err != nil {
		return err
	}
	var opts []client.RequestOption
	if authenticated {
		cookie, err := authCookie(sc)
		if err != nil {
			return err
		}
		opts = append(opts, cookie)
	}
	ex, err := call(id, opts...)
	if err != nil {
		return err
	}
	record(sc, ex)
	return nil
}
