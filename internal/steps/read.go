package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/tidwall/gjson"
)

// NonExistentBookingID is an id no environment is expected to hold
const NonExistentBookingID = 999999999

func (s *Steps) registerRead(sc *godog.ScenarioContext) {
	sc.Step(`^a booking exists in the system$`, s.iCreateAValidBooking)
	sc.Step(`^I retrieve the booking by its ID$`, s.iRetrieveTheBookingByItsID)
	sc.Step(`^I request the booking by its ID without an auth token$`, s.iRequestTheBookingWithoutAuth)
	sc.Step(`^I request a booking with a non-existent ID$`, s.iRequestANonExistentBooking)
	sc.Step(`^the retrieved booking dates should match the submitted dates$`, s.theRetrievedBookingDatesShouldMatch)
	sc.Step(`^the response should document the missing PII fields$`, s.theResponseShouldDocumentTheMissingPIIFields)
}

func (s *Steps) iRetrieveTheBookingByItsID(ctx context.Context) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	id, err := bookingID(sc)
	if err != nil {
		return err
	}
	cookie, err := authCookie(sc)
	if err != nil {
		return err
	}
	ex, err := s.bookings.GetBooking(ctx, id, cookie)
	if err != nil {
		return err
	}
	record(sc, ex)
	return nil
}

func (s *Steps) iRequestTheBookingWithoutAuth(ctx context.Context) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	id, err := bookingID(sc)
	if err != nil {
		return err
	}
	ex, err := s.bookings.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	record(sc, ex)
	return nil
}

func (s *Steps) iRequestANonExistentBooking(ctx context.Context) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	cookie, err := authCookie(sc)
	if err != nil {
		return err
	}
	ex, err := s.bookings.GetBooking(ctx, NonExistentBookingID, cookie)
	if err != nil {
		return err
	}
	record(sc, ex)
	return nil
}

func (s *Steps) theRetrievedBookingDatesShouldMatch(ctx context.Context) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	for _, path := range []string{"bookingdates.checkin", "bookingdates.checkout"} {
		if !ex.Get(path).Exists() {
			return fmt.Errorf("%s should be present in the GET response: %s", path, ex.Text())
		}
	}
	return nil
}

// theResponseShouldDocumentTheMissingPIIFields asserts the API keeps email
// and phone out of booking responses
func (s *Steps) theResponseShouldDocumentTheMissingPIIFields(ctx context.Context) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	email, phone := ex.Get("email"), ex.Get("phone")
	s.sink.Step(fmt.Sprintf("email and phone omitted from GET response. Actual email: '%s', actual phone: '%s'",
		email.String(), phone.String()))

	if email.Exists() && email.Type != gjson.Null {
		return fmt.Errorf("expected email to be stripped from the response, got %s", email.Raw)
	}
	if phone.Exists() && phone.Type != gjson.Null {
		return fmt.Errorf("expected phone to be stripped from the response, got %s", phone.Raw)
	}
	return nil
}
