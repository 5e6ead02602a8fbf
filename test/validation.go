package test

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation messages returned in the errors array
const (
	msgFirstnameBlank  = "Firstname should not be blank"
	msgFirstnameSize   = "size must be between 3 and 18"
	msgLastnameBlank   = "Lastname should not be blank"
	msgLastnameSize    = "size must be between 3 and 30"
	msgRoomIDMin       = "must be greater than or equal to 1"
	msgRoomIDNull      = "Room ID must be set"
	msgDepositNull     = "Deposit paid must be set"
	msgDatesNull       = "Booking dates must be set"
	msgCheckinNull     = "Checkin date must be set"
	msgCheckoutNull    = "Checkout date must be set"
	msgDateFormat      = "must be a date in the format YYYY-MM-DD"
	msgCheckoutOrder   = "Checkout date must be after checkin date"
	msgEmailBlank      = "Email should not be blank"
	msgEmailFormat     = "must be a well-formed email address"
	msgPhoneBlank      = "Phone should not be blank"
	msgPhoneSize       = "size must be between 11 and 21"
	msgMalformedBody   = "Failed to read request body"
	msgInvalidTypeTmpl = "Failed to read request: %s has an invalid value"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// bookingRequest distinguishes absent and null fields from zero values
type bookingRequest struct {
	RoomID       *int          `json:"roomid"`
	Firstname    *string       `json:"firstname"`
	Lastname     *string       `json:"lastname"`
	DepositPaid  *bool         `json:"depositpaid"`
	BookingDates *datesRequest `json:"bookingdates"`
	Email        *string       `json:"email"`
	Phone        *string       `json:"phone"`
}

type datesRequest struct {
	Checkin  *string `json:"checkin"`
	Checkout *string `json:"checkout"`
}

// decodeBooking parses and validates a booking body. It returns every
// validation message, or the record to store when there are none.
func decodeBooking(body []byte) (*BookingRecord, []string) {
	var req bookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []string{fmt.Sprintf(msgInvalidTypeTmpl, typeErr.Field)}
		}
		return nil, []string{msgMalformedBody}
	}

	var problems []string
	add := func(msg string) { problems = append(problems, msg) }

	switch {
	case req.RoomID == nil:
		add(msgRoomIDNull)
	case *req.RoomID < 1:
		add(msgRoomIDMin)
	}

	checkName(req.Firstname, 3, 18, msgFirstnameBlank, msgFirstnameSize, add)
	checkName(req.Lastname, 3, 30, msgLastnameBlank, msgLastnameSize, add)

	if req.DepositPaid == nil {
		add(msgDepositNull)
	}

	checkin, checkout := checkDates(req.BookingDates, add)

	switch {
	case req.Email == nil || strings.TrimSpace(*req.Email) == "":
		add(msgEmailBlank)
	case !emailPattern.MatchString(*req.Email):
		add(msgEmailFormat)
	}

	switch {
	case req.Phone == nil || strings.TrimSpace(*req.Phone) == "":
		add(msgPhoneBlank)
	case !between(*req.Phone, 11, 21):
		add(msgPhoneSize)
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return &BookingRecord{
		RoomID:      *req.RoomID,
		Firstname:   *req.Firstname,
		Lastname:    *req.Lastname,
		DepositPaid: *req.DepositPaid,
		Checkin:     checkin,
		Checkout:    checkout,
		Email:       *req.Email,
		Phone:       *req.Phone,
	}, nil
}

func checkName(value *string, lo, hi int, blank, size string, add func(string)) {
	switch {
	case value == nil || strings.TrimSpace(*value) == "":
		add(blank)
	case !between(*value, lo, hi):
		add(size)
	}
}

func checkDates(dates *datesRequest, add func(string)) (checkin, checkout string) {
	if dates == nil {
		add(msgDatesNull)
		return "", ""
	}
	in, inOK := parseDate(dates.Checkin, msgCheckinNull, add)
	out, outOK := parseDate(dates.Checkout, msgCheckoutNull, add)
	if inOK && outOK && !out.After(in) {
		add(msgCheckoutOrder)
	}
	return in.Format(time.DateOnly), out.Format(time.DateOnly)
}

func parseDate(value *string, missing string, add func(string)) (time.Time, bool) {
	if value == nil || *value == "" {
		add(missing)
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		add(msgDateFormat)
		return time.Time{}, false
	}
	return t, true
}

func between(s string, lo, hi int) bool {
	n := utf8.RuneCountInString(s)
	return n >= lo && n <= hi
}
