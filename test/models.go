package test

import (
	"time"

	"github.com/celestiaorg/booking-acceptance/internal/types"
)

// BookingRecord is a booking as stored by the fake API.
// Dates are kept as YYYY-MM-DD so they compare correctly as text.
type BookingRecord struct {
	ID          uint   `gorm:"primaryKey"`
	RoomID      int    `gorm:"not null;index"`
	Firstname   string `gorm:"not null"`
	Lastname    string `gorm:"not null"`
	DepositPaid bool
	Checkin     string `gorm:"not null;size:10"`
	Checkout    string `gorm:"not null;size:10"`
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (BookingRecord) TableName() string {
	return "bookings"
}

// Response renders the record the way the API returns it: without email and phone
func (b *BookingRecord) Response() types.BookingResponse {
	return types.BookingResponse{
		BookingID:   int(b.ID),
		RoomID:      b.RoomID,
		Firstname:   b.Firstname,
		Lastname:    b.Lastname,
		DepositPaid: b.DepositPaid,
		BookingDates: types.BookingDates{
			Checkin:  b.Checkin,
			Checkout: b.Checkout,
		},
	}
}

// TokenRecord is an issued session token
type TokenRecord struct {
	Token     string `gorm:"primaryKey"`
	Username  string `gorm:"not null"`
	CreatedAt time.Time
}

// TableName overrides the default table name
func (TokenRecord) TableName() string {
	return "tokens"
}
