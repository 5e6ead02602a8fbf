package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/api/routes"
	"github.com/celestiaorg/booking-acceptance/internal/factory"
	"github.com/celestiaorg/booking-acceptance/internal/types"
)

func TestNewTestEnvironment(t *testing.T) {
	env := NewTestEnvironment(t)
	defer env.Cleanup()

	assert.Same(t, t, env.T())
	assert.NotNil(t, env.App, "app should be initialized")
	assert.NotNil(t, env.Server, "server should be initialized")
	assert.NotNil(t, env.DB, "database should be initialized")
	assert.NotNil(t, env.Bookings, "booking repository should be initialized")
	assert.NotNil(t, env.Tokens, "token repository should be initialized")
	assert.NotNil(t, env.AuthClient, "auth client should be initialized")
	assert.NotNil(t, env.BookingClient, "booking client should be initialized")
	assert.Equal(t, env.Server.URL, env.Config.BaseURL())
	assert.Equal(t, DefaultAdminUsername, env.Config.AdminUsername())
	assert.Equal(t, DefaultClientTimeout, env.Config.Timeout())

	// cleanup is idempotent
	env.Cleanup()
	env.Cleanup()
	assert.Error(t, env.Context().Err(), "context should be canceled after cleanup")
}

func TestEnvironmentOptions(t *testing.T) {
	cleaned := false
	env := NewTestEnvironment(t,
		WithAdminCredentials("root", "s3cret"),
		WithCleanupFunc(func() { cleaned = true }),
	)

	ex, err := env.AuthClient.CreateToken(env.Context(), types.TokenRequest{Username: "root", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)

	ex, err = env.AuthClient.CreateToken(env.Context(), types.TokenRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, ex.StatusCode)

	env.Cleanup()
	assert.True(t, cleaned)
}

func TestLogin(t *testing.T) {
	env := NewTestEnvironment(t)

	tests := []struct {
		name       string
		payload    types.TokenPayload
		wantStatus int
	}{
		{"admin credentials", types.TokenRequest{Username: "admin", Password: "password123"}, http.StatusOK},
		{"wrong password", types.TokenRequest{Username: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"password absent", factory.TokenRequestWithoutPassword("admin"), http.StatusUnauthorized},
		{"empty object", types.RawPayload{}, http.StatusUnauthorized},
		{"extra fields", types.RawPayload{"username": "admin", "password": "password123", "role": "root"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := env.AuthClient.CreateToken(env.Context(), tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, ex.StatusCode, ex.Text())

			token, ok := client.TokenFrom(ex)
			assert.Equal(t, tt.wantStatus == http.StatusOK, ok)
			if ok {
				assert.True(t, env.Tokens.Valid(env.Context(), token))
			}
		})
	}
}

func TestCreateBooking(t *testing.T) {
	env := NewTestEnvironment(t)

	booking := factory.ValidBooking()
	ex, err := env.BookingClient.CreateBooking(env.Context(), booking)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, ex.StatusCode, ex.Text())

	id, ok := client.BookingIDFrom(ex)
	require.True(t, ok)
	assert.Positive(t, id)
	assert.Equal(t, int64(booking.RoomID), ex.Get("roomid").Int())
	assert.Equal(t, booking.Firstname, ex.Get("firstname").String())
	assert.Equal(t, booking.Lastname, ex.Get("lastname").String())
	assert.Equal(t, booking.BookingDates.Checkin, ex.Get("bookingdates.checkin").String())
	assert.False(t, ex.Get("email").Exists(), "email is not echoed")
	assert.False(t, ex.Get("phone").Exists(), "phone is not echoed")

	assert.Equal(t, int64(1), env.BookingCount())
}

func TestCreateBookingValidation(t *testing.T) {
	env := NewTestEnvironment(t)

	withoutCheckin, err := factory.BookingWithoutField("checkin")
	require.NoError(t, err)
	nullFirstname, err := factory.BookingWithNullField("firstname")
	require.NoError(t, err)

	tests := []struct {
		name    string
		payload types.BookingPayload
		message string
	}{
		{"short firstname", factory.BookingWithFirstname("Al"), msgFirstnameSize},
		{"long lastname", factory.BookingWithLastname("Abcdefghijklmnopqrstuvwxyzabcde"), msgLastnameSize},
		{"short phone", factory.BookingWithPhone("123"), msgPhoneSize},
		{"bad email", factory.BookingWithEmail("not-an-email"), msgEmailFormat},
		{"checkout before checkin", factory.BookingWithDates("2027-09-10", "2027-09-01"), msgCheckoutOrder},
		{"roomid as string", factory.BookingWithRoomIDAsString("abc"), "roomid has an invalid value"},
		{"roomid as empty string", factory.BookingWithRoomIDAsEmptyString(), "roomid has an invalid value"},
		{"depositpaid as integer", factory.BookingWithDepositPaidAsInteger(1), "depositpaid has an invalid value"},
		{"checkin omitted", withoutCheckin, msgCheckinNull},
		{"firstname null", nullFirstname, msgFirstnameBlank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := env.BookingClient.CreateBooking(env.Context(), tt.payload)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, ex.StatusCode)
			assert.True(t, ex.Get("errors").IsArray())
			assert.Contains(t, ex.Text(), tt.message)

			_, ok := client.BookingIDFrom(ex)
			assert.False(t, ok)
		})
	}
	assert.Zero(t, env.BookingCount())
}

func TestReadRequiresToken(t *testing.T) {
	env := NewTestEnvironment(t)

	ex, err := env.BookingClient.CreateBooking(env.Context(), factory.ValidBooking())
	require.NoError(t, err)
	id, ok := client.BookingIDFrom(ex)
	require.True(t, ok)

	ex, err = env.BookingClient.GetBooking(env.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, ex.StatusCode)

	ex, err = env.BookingClient.GetBooking(env.Context(), id, client.WithCookie(client.CookieHeader("forged")))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, ex.StatusCode)

	ex, err = env.BookingClient.GetBooking(env.Context(), id, client.WithCookie(env.AdminCookie()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)
	assert.Equal(t, int64(id), ex.Get("bookingid").Int())
}

func TestDeleteThenGet(t *testing.T) {
	env := NewTestEnvironment(t)
	cookie := client.WithCookie(env.AdminCookie())

	ex, err := env.BookingClient.CreateBooking(env.Context(), factory.ValidBooking())
	require.NoError(t, err)
	id, ok := client.BookingIDFrom(ex)
	require.True(t, ok)

	ex, err = env.BookingClient.DeleteBooking(env.Context(), id, cookie)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)

	ex, err = env.BookingClient.GetBooking(env.Context(), id, cookie)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, ex.StatusCode)

	ex, err = env.BookingClient.DeleteBooking(env.Context(), id, cookie)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, ex.StatusCode)

	assert.Equal(t, 2, env.Requests.Count(http.MethodDelete, routes.BookingByID(id)))
}

func TestUpdateBooking(t *testing.T) {
	env := NewTestEnvironment(t)
	cookie := client.WithCookie(env.AdminCookie())

	id := env.SeedBooking(&BookingRecord{
		RoomID: 7, Firstname: "Jane", Lastname: "Smith", DepositPaid: true,
		Checkin: "2027-01-01", Checkout: "2027-01-05",
		Email: "jane@example.com", Phone: "07911123456",
	})

	update := factory.BookingWithFirstname("Janet")
	ex, err := env.BookingClient.UpdateBooking(env.Context(), id, update, cookie)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, ex.StatusCode, ex.Text())
	assert.Equal(t, "Janet", ex.Get("firstname").String())

	stored, err := env.Bookings.Get(env.Context(), uint(id))
	require.NoError(t, err)
	assert.Equal(t, "Janet", stored.Firstname)
	assert.Equal(t, update.RoomID, stored.RoomID)

	ex, err = env.BookingClient.UpdateBooking(env.Context(), id, update)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, ex.StatusCode)

	ex, err = env.BookingClient.UpdateBooking(env.Context(), 999999, update, cookie)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, ex.StatusCode)

	ex, err = env.BookingClient.PartialUpdateBooking(env.Context(), id, types.RawPayload{"firstname": "Jo"}, cookie)
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, ex.StatusCode)
}

func TestNonNumericID(t *testing.T) {
	env := NewTestEnvironment(t)

	ex, err := env.BookingClient.GetBooking(env.Context(), "abc", client.WithCookie(env.AdminCookie()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, ex.StatusCode)
}

func TestHealth(t *testing.T) {
	env := NewTestEnvironment(t)

	ex, err := env.BookingClient.Health(env.Context())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)
	assert.Equal(t, "UP", ex.Get("status").String())
}

func TestRoomConflicts(t *testing.T) {
	env := NewTestEnvironment(t, WithRoomConflicts())

	first := factory.BookingWithDates("2027-03-01", "2027-03-05")
	ex, err := env.BookingClient.CreateBooking(env.Context(), first)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, ex.StatusCode)

	overlapping := factory.BookingWithDates("2027-03-04", "2027-03-08")
	overlapping.RoomID = first.RoomID
	ex, err = env.BookingClient.CreateBooking(env.Context(), overlapping)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, ex.StatusCode)

	adjacent := factory.BookingWithDates("2027-03-05", "2027-03-09")
	adjacent.RoomID = first.RoomID
	ex, err = env.BookingClient.CreateBooking(env.Context(), adjacent)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, ex.StatusCode)
}

func TestRequestLog(t *testing.T) {
	env := NewTestEnvironment(t)

	_, err := env.BookingClient.Health(env.Context())
	require.NoError(t, err)
	_ = env.AdminCookie()

	requests := env.Requests.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, routes.Health, requests[0].Path)
	assert.Equal(t, http.StatusOK, requests[0].Status)
	assert.Equal(t, 1, env.Requests.Count(http.MethodPost, routes.AuthLogin))
	assert.Equal(t, 1, env.Requests.CountMethod(http.MethodGet, routes.Bookings))

	env.Requests.Reset()
	assert.Empty(t, env.Requests.Requests())
}
