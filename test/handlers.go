package test

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/logger"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

// BookingAPI serves the auth and booking endpoints
type BookingAPI struct {
	bookings      *BookingRepository
	tokens        *TokenRepository
	adminUsername string
	adminPassword string
}

// NewBookingAPI creates the handlers for the given store and admin login
func NewBookingAPI(bookings *BookingRepository, tokens *TokenRepository, adminUsername, adminPassword string) *BookingAPI {
	return &BookingAPI{
		bookings:      bookings,
		tokens:        tokens,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Login handles POST /auth/login
func (a *BookingAPI) Login(c *fiber.Ctx) error {
	var creds map[string]any
	if err := json.Unmarshal(c.Body(), &creds); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Error: msgMalformedBody})
	}
	username, _ := creds["username"].(string)
	password, _ := creds["password"].(string)
	if username == "" || username != a.adminUsername || password != a.adminPassword {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Invalid credentials"})
	}

	token, err := a.tokens.Issue(c.UserContext(), username)
	if err != nil {
		logger.Errorf("failed to issue token: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(types.TokenResponse{Token: token})
}

// Health handles GET /booking/actuator/health
func (a *BookingAPI) Health(c *fiber.Ctx) error {
	return c.JSON(types.HealthResponse{Status: "UP"})
}

// CreateBooking handles POST /booking. Creating needs no token.
func (a *BookingAPI) CreateBooking(c *fiber.Ctx) error {
	record, problems := decodeBooking(c.Body())
	if len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Errors: problems})
	}

	if err := a.bookings.Create(c.UserContext(), record); err != nil {
		if errors.Is(err, ErrRoomUnavailable) {
			return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{Error: err.Error()})
		}
		logger.Errorf("failed to create booking: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(record.Response())
}

// GetBooking handles GET /booking/:id
func (a *BookingAPI) GetBooking(c *fiber.Ctx) error {
	id, ok := bookingID(c)
	if !ok {
		return invalidBookingID(c)
	}
	record, err := a.bookings.Get(c.UserContext(), id)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(record.Response())
}

// UpdateBooking handles PUT /booking/:id, replacing the whole booking
func (a *BookingAPI) UpdateBooking(c *fiber.Ctx) error {
	id, ok := bookingID(c)
	if !ok {
		return invalidBookingID(c)
	}
	record, problems := decodeBooking(c.Body())
	if len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Errors: problems})
	}
	if err := a.bookings.Update(c.UserContext(), id, record); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(record.Response())
}

// PartialUpdateBooking handles PATCH /booking/:id, which the service does not support
func (a *BookingAPI) PartialUpdateBooking(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "GET, PUT, DELETE")
	return c.Status(fiber.StatusMethodNotAllowed).JSON(types.ErrorResponse{Error: "Method Not Allowed"})
}

// DeleteBooking handles DELETE /booking/:id
func (a *BookingAPI) DeleteBooking(c *fiber.Ctx) error {
	id, ok := bookingID(c)
	if !ok {
		return invalidBookingID(c)
	}
	if err := a.bookings.Delete(c.UserContext(), id); err != nil {
		return bookingError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RequireToken rejects requests without a valid token cookie
func (a *BookingAPI) RequireToken(c *fiber.Ctx) error {
	if !a.tokens.Valid(c.UserContext(), c.Cookies(client.CookieName)) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{Error: "Authentication required"})
	}
	return c.Next()
}

func bookingID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidBookingID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{Errors: []string{"Booking ID must be a positive number"}})
}

func bookingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrRoomUnavailable):
		return c.Status(fiber.StatusConflict).JSON(types.ErrorResponse{Error: err.Error()})
	default:
		logger.Errorf("booking store failure: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
