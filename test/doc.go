// Package test provides an in-process booking API and the environment that
// wires it to the real clients for integration testing.
//
// The fake API follows the contract of the live booking service closely
// enough for the acceptance suite to run without network access:
//
//   - POST /auth/login issues a token for the admin credentials
//   - POST /booking validates the payload and stores the booking
//   - GET, PUT and DELETE /booking/{id} require a "token" cookie
//   - PATCH /booking/{id} is rejected with 405
//   - GET /booking/actuator/health reports the service as UP
//
// Bookings and tokens live in a file-based SQLite database that is removed
// when the environment is cleaned up. Every request reaching the API is
// recorded, so tests can assert how many logins or deletes a code path made.
//
// Example Usage:
//
//	func TestExample(t *testing.T) {
//	    env := test.NewTestEnvironment(t)
//	    defer env.Cleanup()
//
//	    ex, err := env.BookingClient.CreateBooking(env.Context(), factory.ValidBooking())
//	    env.Require().NoError(err)
//	    env.Require().Equal(201, ex.StatusCode)
//	    env.Require().Equal(1, env.Requests.Count("POST", "/booking"))
//	}
package test
