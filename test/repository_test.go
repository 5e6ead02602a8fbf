package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(room int, checkin, checkout string) *BookingRecord {
	return &BookingRecord{
		RoomID:      room,
		Firstname:   "John",
		Lastname:    "Doe",
		DepositPaid: true,
		Checkin:     checkin,
		Checkout:    checkout,
		Email:       "john@example.com",
		Phone:       "07911123456",
	}
}

func TestBookingRepository(t *testing.T) {
	env := NewTestEnvironment(t)
	ctx := context.Background()
	repo := env.Bookings

	rec := sampleRecord(4, "2027-02-01", "2027-02-05")
	require.NoError(t, repo.Create(ctx, rec))
	require.NotZero(t, rec.ID)

	got, err := repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Firstname, got.Firstname)
	assert.Equal(t, "2027-02-01", got.Checkin)

	resp := got.Response()
	assert.Equal(t, int(rec.ID), resp.BookingID)
	assert.Empty(t, resp.Email)
	assert.Empty(t, resp.Phone)

	updated := sampleRecord(5, "2027-02-02", "2027-02-06")
	updated.Lastname = "Roe"
	require.NoError(t, repo.Update(ctx, rec.ID, updated))
	got, err = repo.Get(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Roe", got.Lastname)
	assert.Equal(t, 5, got.RoomID)

	assert.ErrorIs(t, repo.Update(ctx, rec.ID+100, sampleRecord(1, "2027-02-01", "2027-02-02")), ErrBookingNotFound)

	require.NoError(t, repo.Delete(ctx, rec.ID))
	_, err = repo.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, rec.ID), ErrBookingNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBookingRepositoryConflicts(t *testing.T) {
	env := NewTestEnvironment(t)
	ctx := context.Background()
	repo := NewBookingRepository(env.DB, true)

	first := sampleRecord(9, "2027-04-10", "2027-04-14")
	require.NoError(t, repo.Create(ctx, first))

	tests := []struct {
		name     string
		room     int
		checkin  string
		checkout string
		wantErr  error
	}{
		{"same stay", 9, "2027-04-10", "2027-04-14", ErrRoomUnavailable},
		{"overlaps start", 9, "2027-04-08", "2027-04-11", ErrRoomUnavailable},
		{"inside", 9, "2027-04-11", "2027-04-12", ErrRoomUnavailable},
		{"ends at checkin", 9, "2027-04-06", "2027-04-10", nil},
		{"other room", 10, "2027-04-10", "2027-04-14", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, sampleRecord(tt.room, tt.checkin, tt.checkout))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	// a booking does not conflict with itself when updated
	moved := sampleRecord(9, "2027-04-11", "2027-04-15")
	assert.NoError(t, repo.Update(ctx, first.ID, moved))
}

func TestTokenRepository(t *testing.T) {
	env := NewTestEnvironment(t)
	ctx := context.Background()

	token, err := env.Tokens.Issue(ctx, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, env.Tokens.Valid(ctx, token))
	assert.False(t, env.Tokens.Valid(ctx, ""))
	assert.False(t, env.Tokens.Valid(ctx, "unknown"))

	other, err := env.Tokens.Issue(ctx, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	require.NoError(t, env.Tokens.Revoke(ctx, token))
	assert.False(t, env.Tokens.Valid(ctx, token))
	assert.True(t, env.Tokens.Valid(ctx, other))
}
