// Package factory generates booking and credential payloads for scenarios.
//
// ValidBooking is the baseline. Every other builder starts from a fresh
// baseline and changes exactly one field, so a negative test isolates one
// variable. Builders that need a value the typed Booking cannot hold return a
// types.RawPayload instead.
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

const (
	// MinRoomID and MaxRoomID bound generated room ids as [MinRoomID, MaxRoomID)
	MinRoomID = 1
	MaxRoomID = 200

	// LeadMonths keeps checkin far enough ahead to avoid past-date rejections
	LeadMonths = 2
	// JitterDays spreads checkin over [lead, lead+JitterDays) days
	JitterDays = 100
	// StayNights is the fixed stay length
	StayNights = 4

	dateLayout = time.DateOnly
)

// ErrUnknownField is returned for field names the booking does not have
var ErrUnknownField = errors.New("unknown booking field")

// now is the clock used for dates and jitter
var now = time.Now

// ValidBooking returns a booking the API accepts: a random room in
// [1,200) and a four night stay starting two months ahead plus a jitter
// derived from the wall clock.
func ValidBooking() types.Booking {
	t := now()
	checkin := CheckinWindowStart(t).AddDate(0, 0, int(t.UnixMilli()%JitterDays))

	return types.Booking{
		RoomID:      MinRoomID + rand.IntN(MaxRoomID-MinRoomID),
		Firstname:   "John",
		Lastname:    "Doe",
		DepositPaid: true,
		BookingDates: types.BookingDates{
			Checkin:  checkin.Format(dateLayout),
			Checkout: checkin.AddDate(0, 0, StayNights).Format(dateLayout),
		},
		Email: "john.doe@example.com",
		Phone: "07911123456",
	}
}

// CheckinWindowStart returns the earliest checkin ValidBooking produces for t
func CheckinWindowStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, LeadMonths, 0)
}

// BookingWithFirstname returns a valid booking with firstname overridden
func BookingWithFirstname(firstname string) types.Booking {
	b := ValidBooking()
	b.Firstname = firstname
	return b
}

// BookingWithLastname returns a valid booking with lastname overridden
func BookingWithLastname(lastname string) types.Booking {
	b := ValidBooking()
	b.Lastname = lastname
	return b
}

// BookingWithPhone returns a valid booking with phone overridden
func BookingWithPhone(phone string) types.Booking {
	b := ValidBooking()
	b.Phone = phone
	return b
}

// BookingWithEmail returns a valid booking with email overridden
func BookingWithEmail(email string) types.Booking {
	b := ValidBooking()
	b.Email = email
	return b
}

// BookingWithDates returns a valid booking with the stay dates overridden
func BookingWithDates(checkin, checkout string) types.Booking {
	b := ValidBooking()
	b.BookingDates = types.BookingDates{Checkin: checkin, Checkout: checkout}
	return b
}

// BookingWithRoomIDAsString sends roomid as a JSON string
func BookingWithRoomIDAsString(roomID string) types.RawPayload {
	p := ToRaw(ValidBooking())
	p["roomid"] = roomID
	return p
}

// BookingWithRoomIDAsEmptyString sends roomid as ""
func BookingWithRoomIDAsEmptyString() types.RawPayload {
	return BookingWithRoomIDAsString("")
}

// BookingWithDepositPaidAsInteger sends depositpaid as a JSON number
func BookingWithDepositPaidAsInteger(depositPaid int) types.RawPayload {
	p := ToRaw(ValidBooking())
	p["depositpaid"] = depositPaid
	return p
}

// BookingWithoutField removes field from a valid booking. checkin and
// checkout are removed from inside bookingdates. The key is absent from the
// serialized document, not null.
func BookingWithoutField(field string) (types.RawPayload, error) {
	p := ToRaw(ValidBooking())
	parent, key, err := locate(p, field)
	if err != nil {
		return nil, err
	}
	delete(parent, key)
	return p, nil
}

// BookingWithNullField keeps field in a valid booking but sets it to null
func BookingWithNullField(field string) (types.RawPayload, error) {
	p := ToRaw(ValidBooking())
	parent, key, err := locate(p, field)
	if err != nil {
		return nil, err
	}
	parent[key] = nil
	return p, nil
}

// BookingWithField returns a valid booking with one field set to value,
// addressed by its wire name. Used by outline steps that name the field.
func BookingWithField(field, value string) (types.Booking, error) {
	switch field {
	case "firstname":
		return BookingWithFirstname(value), nil
	case "lastname":
		return BookingWithLastname(value), nil
	case "phone":
		return BookingWithPhone(value), nil
	case "email":
		return BookingWithEmail(value), nil
	default:
		return types.Booking{}, fmt.Errorf("%w: no builder for %q", ErrUnknownField, field)
	}
}

// TokenRequestWithoutPassword returns credentials with the password key absent
func TokenRequestWithoutPassword(username string) types.RawPayload {
	return types.RawPayload{"username": username}
}

// AdminCredentials returns the admin login of the environment
func AdminCredentials(cfg *config.Config) types.TokenRequest {
	return types.TokenRequest{
		Username: cfg.AdminUsername(),
		Password: cfg.AdminPassword(),
	}
}

// ToRaw converts a booking into its semi-structured form
func ToRaw(b types.Booking) types.RawPayload {
	data, err := json.Marshal(b)
	if err != nil {
		panic(fmt.Sprintf("factory: marshal booking: %v", err))
	}
	var p types.RawPayload
	if err := json.Unmarshal(data, &p); err != nil {
		panic(fmt.Sprintf("factory: unmarshal booking: %v", err))
	}
	return p
}

// locate finds the map holding field, descending into bookingdates for the dates
func locate(p types.RawPayload, field string) (map[string]any, string, error) {
	switch field {
	case "checkin", "checkout":
		dates, ok := p["bookingdates"].(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("%w: bookingdates is not an object", ErrUnknownField)
		}
		return dates, field, nil
	case "roomid", "firstname", "lastname", "depositpaid", "bookingdates", "email", "phone":
		return p, field, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}
