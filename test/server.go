package test

import (
	"net/http/httptest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/celestiaorg/booking-acceptance/internal/api/routes"
)

// bookingByID is BookingByIDTemplate in fiber's parameter syntax
const bookingByID = routes.Bookings + "/:id"

// NewApp builds the fiber app serving api. Every request is recorded in requests.
func NewApp(api *BookingAPI, requests *RequestLog) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(requests.Middleware())
	app.Use(requestLogger())

	app.Post(routes.AuthLogin, api.Login).Name("login")
	app.Get(routes.Health, api.Health).Name("health")

	app.Post(routes.Bookings, api.CreateBooking).Name("create_booking")
	app.Patch(bookingByID, api.PartialUpdateBooking).Name("patch_booking")

	app.Get(bookingByID, api.RequireToken, api.GetBooking).Name("get_booking")
	app.Put(bookingByID, api.RequireToken, api.UpdateBooking).Name("update_booking")
	app.Delete(bookingByID, api.RequireToken, api.DeleteBooking).Name("delete_booking")

	return app
}

// SetupServer starts the fake API for env behind an httptest server
func SetupServer(env *TestEnvironment) {
	env.API = NewBookingAPI(env.Bookings, env.Tokens, env.adminUsername, env.adminPassword)
	env.App = NewApp(env.API, env.Requests)

	// Create test server using adaptor to convert Fiber app to http.Handler
	env.Server = httptest.NewServer(adaptor.FiberApp(env.App))
}
