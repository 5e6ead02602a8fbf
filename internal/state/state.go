// Package state holds the facts one scenario accumulates while it runs.
//
// Each key fixes the type of its value at compile time, so a caller asking
// for AuthToken always gets a string and can never receive the exchange
// stored under LastResponse. Values are stored under the key itself, so keys
// of different value types never share a slot.
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
)

// ErrNotFound is returned by Get for a key that has no value
var ErrNotFound = errors.New("state: key not found")

// Key names a scenario fact whose value has type T
type Key[T any] struct {
	name string
}

// String returns the key name
func (k Key[T]) String() string {
	return k.name
}

// The closed set of scenario keys
var (
	// BookingID is the id of a booking created by the scenario; teardown deletes it
	BookingID = Key[int]{name: "BOOKING_ID"}
	// AuthToken is the full Cookie header value, e.g. "token=abc123"
	AuthToken = Key[string]{name: "AUTH_TOKEN"}
	// LastResponse is the most recent exchange with the API
	LastResponse = Key[*client.Exchange]{name: "LAST_RESPONSE"}
	// LastRequestBody is the serialized body of the most recent request
	LastRequestBody = Key[string]{name: "LAST_REQUEST_BODY"}
)

// State is the isolated store of one scenario. It is safe for concurrent use.
type State struct {
	mu     sync.RWMutex
	values map[any]any
}

// New creates an empty State
func New() *State {
	return &State{values: make(map[any]any)}
}

// Set stores v under k, replacing any previous value
func Set[T any](s *State, k Key[T], v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[k] = v
}

// Get returns the value stored under k or an error wrapping ErrNotFound
func Get[T any](s *State, k Key[T]) (T, error) {
	v, ok := Lookup(s, k)
	if !ok {
		return v, fmt.Errorf("%w: %s", ErrNotFound, k.name)
	}
	return v, nil
}

// Lookup returns the value stored under k and whether it was present
func Lookup[T any](s *State, k Key[T]) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[k].(T)
	return v, ok
}

// Contains reports whether k has a value
func Contains[T any](s *State, k Key[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[k]
	return ok
}

// Delete removes the value stored under k
func Delete[T any](s *State, k Key[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, k)
}

// Clear removes every value
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.values)
}

// Len returns the number of stored values
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
