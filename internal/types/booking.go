package types

// Booking is a reservation as it travels over the wire.
// Only a successful create assigns it an id; the id is not part of the entity.
type Booking struct {
	RoomID       int          `json:"roomid"`
	Firstname    string       `json:"firstname"`
	Lastname     string       `json:"lastname"`
	DepositPaid  bool         `json:"depositpaid"`
	BookingDates BookingDates `json:"bookingdates"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
}

// BookingDates holds the stay interval as YYYY-MM-DD strings
type BookingDates struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

func (Booking) bookingPayload() {}
