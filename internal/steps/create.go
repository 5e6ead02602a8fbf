package steps

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/factory"
	"github.com/celestiaorg/booking-acceptance/internal/state"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

func (s *Steps) registerCreate(sc *godog.ScenarioContext) {
	sc.Step(`^I (?:have created|create) a booking with the following details:$`, s.iCreateABookingWithDetails)
	sc.Step(`^I create a valid booking$`, s.iCreateAValidBooking)
	sc.Step(`^I create a booking with firstname "([^"]*)" and all other fields valid$`, s.withField("firstname"))
	sc.Step(`^I create a booking with lastname "([^"]*)" and all other fields valid$`, s.withField("lastname"))
	sc.Step(`^I create a booking with phone "([^"]*)" and all other fields valid$`, s.withField("phone"))
	sc.Step(`^I create a booking with email "([^"]*)" and all other fields valid$`, s.withField("email"))
	sc.Step(`^I create a booking with checkin "([^"]*)" and checkout "([^"]*)"$`, s.iCreateABookingWithDates)
	sc.Step(`^I create a booking with roomid as empty string and all other fields valid$`, s.iCreateABookingWithRoomIDAsEmptyString)
	sc.Step(`^I create a booking with roomid as string value "([^"]*)" and all other fields valid$`, s.iCreateABookingWithRoomIDAsString)
	sc.Step(`^I create a booking with depositpaid as integer value (-?\d+) and all other fields valid$`, s.iCreateABookingWithDepositPaidAsInteger)
	sc.Step(`^I create a booking with "([^"]*)" set to "([^"]*)" and all other fields valid$`, s.iCreateABookingWithFieldSetTo)
	sc.Step(`^I create a booking without the "([^"]*)" field$`, s.iCreateABookingWithoutField)
	sc.Step(`^I create a booking with the "([^"]*)" field set to null$`, s.iCreateABookingWithNullField)

	sc.Step(`^the response should contain a numeric booking ID$`, s.theResponseShouldContainANumericBookingID)
	sc.Step(`^the response booking details should match what was submitted$`, s.theResponseBookingDetailsShouldMatch)
	sc.Step(`^the response body should match the booking creation contract schema$`, s.matchesSchema(BookingResponseSchema))
	sc.Step(`^the response body should match the validation error schema$`, s.matchesSchema(ErrorResponseSchema))
	sc.Step(`^the response booking field "([^"]*)" should be "([^"]*)"$`, s.theResponseBookingFieldShouldBe)
	sc.Step(`^the response should contain an? "([^"]*)" field that is an array$`, s.theResponseShouldContainAnArrayField)
	sc.Step(`^the errors array should not be empty$`, s.theErrorsArrayShouldNotBeEmpty)
	sc.Step(`^the error response should contain "([^"]*)"$`, s.theErrorResponseShouldContain)
}

// create sends payload and, on 201, remembers the booking for teardown
func (s *Steps) create(ctx context.Context, payload types.BookingPayload) error {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return err
	}
	ex, err := s.bookings.CreateBooking(ctx, payload)
	if err != nil {
		return err
	}
	record(sc, ex)
	if id, ok := client.BookingIDFrom(ex); ok {
		state.Set(sc.State, state.BookingID, id)
		s.sink.Step(fmt.Sprintf("Booking created with ID: %d", id))
	}
	return nil
}

func (s *Steps) iCreateABookingWithDetails(ctx context.Context, table *godog.Table) error {
	booking, err := bookingFromTable(table)
	if err != nil {
		return err
	}
	return s.create(ctx, booking)
}

func (s *Steps) iCreateAValidBooking(ctx context.Context) error {
	return s.create(ctx, factory.ValidBooking())
}

func (s *Steps) withField(field string) func(context.Context, string) error {
	return func(ctx context.Context, value string) error {
		return s.iCreateABookingWithFieldSetTo(ctx, field, value)
	}
}

func (s *Steps) iCreateABookingWithFieldSetTo(ctx context.Context, field, value string) error {
	booking, err := factory.BookingWithField(field, value)
	if err != nil {
		return err
	}
	return s.create(ctx, booking)
}

func (s *Steps) iCreateABookingWithDates(ctx context.Context, checkin, checkout string) error {
	return s.create(ctx, factory.BookingWithDates(checkin, checkout))
}

func (s *Steps) iCreateABookingWithRoomIDAsEmptyString(ctx context.Context) error {
	return s.create(ctx, factory.BookingWithRoomIDAsEmptyString())
}

func (s *Steps) iCreateABookingWithRoomIDAsString(ctx context.Context, roomID string) error {
	return s.create(ctx, factory.BookingWithRoomIDAsString(roomID))
}

func (s *Steps) iCreateABookingWithDepositPaidAsInteger(ctx context.Context, value int) error {
	return s.create(ctx, factory.BookingWithDepositPaidAsInteger(value))
}

func (s *Steps) iCreateABookingWithoutField(ctx context.Context, field string) error {
	payload, err := factory.BookingWithoutField(field)
	if err != nil {
		return err
	}
	return s.create(ctx, payload)
}

func (s *Steps) iCreateABookingWithNullField(ctx context.Context, field string) error {
	payload, err := factory.BookingWithNullField(field)
	if err != nil {
		return err
	}
	return s.create(ctx, payload)
}

func (s *Steps) theResponseShouldContainANumericBookingID(ctx context.Context) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	id := ex.Get("bookingid")
	return check(func(t assert.TestingT) bool {
		return assert.Equal(t, gjson.Number, id.Type, "bookingid should be a number in %s", ex.Text()) &&
			assert.Positive(t, id.Int(), "bookingid should be positive")
	})
}

// theResponseBookingDetailsShouldMatch compares the echoed fields with the
// request. email and phone are not echoed by the API; their absence is noted
// in the report rather than asserted.
func (s *Steps) theResponseBookingDetailsShouldMatch(ctx context.Context) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	sent := gjson.ParseBytes(ex.RequestBody)
	for _, path := range []string{"roomid", "firstname", "lastname", "depositpaid", "bookingdates.checkin", "bookingdates.checkout"} {
		want, got := sent.Get(path), ex.Get(path)
		if !got.Exists() {
			return fmt.Errorf("%s should be present in the response: %s", path, ex.Text())
		}
		if want.String() != got.String() {
			return fmt.Errorf("%s: submitted %s, response has %s", path, want.Raw, got.Raw)
		}
	}
	s.sink.Step(fmt.Sprintf("email and phone omitted from the response. Actual email: '%s', actual phone: '%s'",
		ex.Get("email").String(), ex.Get("phone").String()))
	return nil
}

func (s *Steps) matchesSchema(name string) func(context.Context) error {
	return func(ctx context.Context) error {
		ex, err := s.last(ctx)
		if err != nil {
			return err
		}
		return ValidateBody(name, ex.Body)
	}
}

func (s *Steps) theResponseBookingFieldShouldBe(ctx context.Context, field, expected string) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	value := ex.Get(field)
	return check(func(t assert.TestingT) bool {
		return assert.True(t, value.Exists(), "Expected field '%s' in %s", field, ex.Text()) &&
			assert.Equal(t, expected, value.String(), "Expected field '%s' to be '%s' but got '%s'", field, expected, value.String())
	})
}

func (s *Steps) theResponseShouldContainAnArrayField(ctx context.Context, field string) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	if !ex.Get(field).IsArray() {
		return fmt.Errorf("expected field '%s' to be an array in the response body: %s", field, ex.Text())
	}
	return nil
}

func (s *Steps) theErrorsArrayShouldNotBeEmpty(ctx context.Context) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	errs := ex.Get("errors")
	return check(func(t assert.TestingT) bool {
		return assert.True(t, errs.IsArray(), "errors should be an array in %s", ex.Text()) &&
			assert.NotEmpty(t, errs.Array(), "Expected errors array to contain at least one validation message")
	})
}

func (s *Steps) theErrorResponseShouldContain(ctx context.Context, message string) error {
	ex, err := s.last(ctx)
	if err != nil {
		return err
	}
	return check(func(t assert.TestingT) bool {
		return assert.Contains(t, ex.Text(), message,
			"Expected error response body to contain '%s'.\nActual body: %s", message, ex.Text())
	})
}

func (s *Steps) last(ctx context.Context) (*client.Exchange, error) {
	sc, err := scenarioFrom(ctx)
	if err != nil {
		return nil, err
	}
	return lastResponse(sc)
}

// bookingFromTable reads a two-column field/value table into a booking
func bookingFromTable(table *godog.Table) (types.Booking, error) {
	data := make(map[string]string, len(table.Rows))
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return types.Booking{}, fmt.Errorf("booking table rows need 2 cells, got %d", len(row.Cells))
		}
		data[strings.TrimSpace(row.Cells[0].Value)] = row.Cells[1].Value
	}
	return bookingFromFields(data)
}

// bookingFromFields builds a booking from wire field names to text values
func bookingFromFields(data map[string]string) (types.Booking, error) {
	roomID, err := strconv.Atoi(data["roomid"])
	if err != nil {
		return types.Booking{}, fmt.Errorf("roomid %q is not a number: %w", data["roomid"], err)
	}
	depositPaid, err := strconv.ParseBool(data["depositpaid"])
	if err != nil {
		return types.Booking{}, fmt.Errorf("depositpaid %q is not a boolean: %w", data["depositpaid"], err)
	}

	return types.Booking{
		RoomID:      roomID,
		Firstname:   data["firstname"],
		Lastname:    data["lastname"],
		DepositPaid: depositPaid,
		BookingDates: types.BookingDates{
			Checkin:  data["checkin"],
			Checkout: data["checkout"],
		},
		Email: data["email"],
		Phone: data["phone"],
	}, nil
}
