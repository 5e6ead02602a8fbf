package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
)

func TestSetGet(t *testing.T) {
	s := New()

	_, err := Get(s, BookingID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "BOOKING_ID")
	assert.False(t, Contains(s, BookingID))

	Set(s, BookingID, 42)
	Set(s, AuthToken, "token=abc")
	ex := &client.Exchange{StatusCode: 201}
	Set(s, LastResponse, ex)
	Set(s, LastRequestBody, `{"roomid":1}`)

	id, err := Get(s, BookingID)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	token, ok := Lookup(s, AuthToken)
	assert.True(t, ok)
	assert.Equal(t, "token=abc", token)

	got, err := Get(s, LastResponse)
	require.NoError(t, err)
	assert.Same(t, ex, got)

	assert.True(t, Contains(s, LastRequestBody))
	assert.Equal(t, 4, s.Len())
}

func TestZeroValueIsStillPresent(t *testing.T) {
	s := New()
	Set(s, AuthToken, "")

	assert.True(t, Contains(s, AuthToken))
	v, err := Get(s, AuthToken)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestDeleteAndClear(t *testing.T) {
	s := New()
	Set(s, BookingID, 1)
	Set(s, AuthToken, "token=x")

	Delete(s, BookingID)
	assert.False(t, Contains(s, BookingID))
	assert.True(t, Contains(s, AuthToken))

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, Contains(s, AuthToken))
}

func TestIsolation(t *testing.T) {
	const scenarios = 32

	stores := make([]*State, scenarios)
	var wg sync.WaitGroup
	for i := 0; i < scenarios; i++ {
		stores[i] = New()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Set(stores[i], BookingID, i)
			Set(stores[i], AuthToken, fmt.Sprintf("token=%d", i))
		}(i)
	}
	wg.Wait()

	for i, s := range stores {
		id, err := Get(s, BookingID)
		require.NoError(t, err)
		assert.Equal(t, i, id)
		token, _ := Lookup(s, AuthToken)
		assert.Equal(t, fmt.Sprintf("token=%d", i), token)
	}
}

func TestConcurrentAccessWithinScenario(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			Set(s, BookingID, i)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = Lookup(s, BookingID)
			_ = Contains(s, LastResponse)
		}()
	}
	wg.Wait()
	assert.True(t, Contains(s, BookingID))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "LAST_RESPONSE", LastResponse.String())
	assert.Equal(t, "LAST_REQUEST_BODY", LastRequestBody.String())
}

func TestZeroKeysOfDifferentTypes(t *testing.T) {
	var (
		strKey Key[string]
		intKey Key[int]
	)
	s := New()
	Set(s, strKey, "token=abc")

	assert.NotPanics(t, func() {
		v, ok := Lookup(s, intKey)
		assert.False(t, ok)
		assert.Zero(t, v)
	})
	assert.False(t, Contains(s, intKey))

	Set(s, intKey, 7)
	assert.Equal(t, 2, s.Len())

	str, err := Get(s, strKey)
	require.NoError(t, err)
	assert.Equal(t, "token=abc", str)
	n, err := Get(s, intKey)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	Delete(s, intKey)
	assert.True(t, Contains(s, strKey))
}
