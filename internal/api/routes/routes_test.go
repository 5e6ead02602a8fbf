package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingByID(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{name: "integer id", id: 42, want: "/booking/42"},
		{name: "string id", id: "abc", want: "/booking/abc"},
		{name: "id needing escape", id: "a b/c", want: "/booking/a%20b%2Fc"},
		{name: "nil id", id: nil, want: "/booking/%3Cnil%3E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookingByID(tt.id))
		})
	}
}
