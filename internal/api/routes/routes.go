// Package routes defines the paths of the booking API under test.
// Paths are contract constants; the base URL varies per environment.
package routes

import (
	"fmt"
	"net/url"
)

const (
	// AuthLogin issues tokens
	AuthLogin = "/auth/login"
	// Bookings is the booking collection
	Bookings = "/booking"
	// BookingByIDTemplate is the booking resource path, templated on {id}
	BookingByIDTemplate = "/booking/{id}"
	// Health is the actuator health endpoint of the booking service
	Health = "/booking/actuator/health"
)

// BookingByID returns the resource path for id. The id is loosely typed so
// that non-numeric and unknown ids can be requested; it is path-escaped.
func BookingByID(id any) string {
	return Bookings + "/" + url.PathEscape(fmt.Sprint(id))
}
