package types

// TokenResponse is returned by a successful login
// Example: {"token":"a5f2c6e1"}
type TokenResponse struct {
	Token string `json:"token"`
}

// BookingResponse is returned by create, read and update calls.
// The API omits email and phone from it.
// Example: {"bookingid":12,"roomid":3,"firstname":"John","lastname":"Doe","depositpaid":true,"bookingdates":{"checkin":"2026-12-01","checkout":"2026-12-05"}}
type BookingResponse struct {
	BookingID    int          `json:"bookingid"`
	RoomID       int          `json:"roomid"`
	Firstname    string       `json:"firstname"`
	Lastname     string       `json:"lastname"`
	DepositPaid  bool         `json:"depositpaid"`
	BookingDates BookingDates `json:"bookingdates"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
}

// ErrorResponse carries validation failures
// Example: {"errors":["size must be between 3 and 18"]}
type ErrorResponse struct {
	Errors []string `json:"errors,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// HealthResponse is returned by the actuator health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}
