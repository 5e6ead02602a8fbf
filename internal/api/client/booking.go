package client

import (
	"context"
	"net/http"

	"github.com/celestiaorg/booking-acceptance/internal/api/routes"
	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

// BookingClient calls the booking API.
//
// Payloads are types.BookingPayload so happy paths keep the typed Booking
// while negative tests can send a types.RawPayload with wrong types or
// missing keys through the same methods.
type BookingClient struct {
	base
}

// NewBookingClient creates a BookingClient for the environment in cfg
func NewBookingClient(cfg *config.Config) *BookingClient {
	return &BookingClient{base: newBase(cfg)}
}

// CreateBooking sends POST /booking
func (c *BookingClient) CreateBooking(ctx context.Context, payload types.BookingPayload) (*Exchange, error) {
	return c.do(ctx, http.MethodPost, routes.Bookings, payload)
}

// GetBooking sends GET /booking/{id}
func (c *BookingClient) GetBooking(ctx context.Context, id any, opts ...RequestOption) (*Exchange, error) {
	return c.do(ctx, http.MethodGet, routes.BookingByID(id), nil, opts...)
}

// UpdateBooking sends PUT /booking/{id}
func (c *BookingClient) UpdateBooking(ctx context.Context, id any, payload types.BookingPayload, opts ...RequestOption) (*Exchange, error) {
	return c.do(ctx, http.MethodPut, routes.BookingByID(id), payload, opts...)
}

// PartialUpdateBooking sends PATCH /booking/{id}
func (c *BookingClient) PartialUpdateBooking(ctx context.Context, id any, payload types.BookingPayload, opts ...RequestOption) (*Exchange, error) {
	return c.do(ctx, http.MethodPatch, routes.BookingByID(id), payload, opts...)
}

// DeleteBooking sends DELETE /booking/{id}
func (c *BookingClient) DeleteBooking(ctx context.Context, id any, opts ...RequestOption) (*Exchange, error) {
	return c.do(ctx, http.MethodDelete, routes.BookingByID(id), nil, opts...)
}

// Health sends GET /booking/actuator/health
func (c *BookingClient) Health(ctx context.Context) (*Exchange, error) {
	return c.do(ctx, http.MethodGet, routes.Health, nil)
}
