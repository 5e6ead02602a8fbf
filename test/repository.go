package test

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrBookingNotFound is returned when no booking has the requested id
	ErrBookingNotFound = errors.New("booking not found")
	// ErrRoomUnavailable is returned when a stay overlaps an existing booking of the room
	ErrRoomUnavailable = errors.New("room unavailable for the requested dates")
)

// BookingRepository handles database operations for bookings
type BookingRepository struct {
	db              *gorm.DB
	detectConflicts bool
}

// NewBookingRepository creates a new instance of BookingRepository
func NewBookingRepository(db *gorm.DB, detectConflicts bool) *BookingRepository {
	return &BookingRepository{
		db:              db,
		detectConflicts: detectConflicts,
	}
}

// Create stores a new booking and assigns its id
func (r *BookingRepository) Create(ctx context.Context, booking *BookingRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.detectConflicts {
			if err := checkAvailability(tx, booking, 0); err != nil {
				return err
			}
		}
		return tx.Create(booking).Error
	})
}

// Get retrieves a booking by id
func (r *BookingRepository) Get(ctx context.Context, id uint) (*BookingRecord, error) {
	var booking BookingRecord
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return &booking, nil
}

// Update replaces every field of an existing booking
func (r *BookingRepository) Update(ctx context.Context, id uint, booking *BookingRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing BookingRecord
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if r.detectConflicts {
			if err := checkAvailability(tx, booking, id); err != nil {
				return err
			}
		}
		booking.ID = id
		booking.CreatedAt = existing.CreatedAt
		return tx.Save(booking).Error
	})
}

// Delete removes a booking
func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookingRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Count returns the number of stored bookings
func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookingRecord{}).Count(&count).Error
	return count, err
}

// checkAvailability fails when another booking of the room overlaps the stay
func checkAvailability(tx *gorm.DB, booking *BookingRecord, exclude uint) error {
	var overlapping int64
	query := tx.Model(&BookingRecord{}).
		Where("room_id = ? AND checkin < ? AND checkout > ?", booking.RoomID, booking.Checkout, booking.Checkin)
	if exclude != 0 {
		query = query.Where("id <> ?", exclude)
	}
	if err := query.Count(&overlapping).Error; err != nil {
		return err
	}
	if overlapping > 0 {
		return ErrRoomUnavailable
	}
	return nil
}

// TokenRepository handles database operations for session tokens
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new instance of TokenRepository
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Issue creates a new token for username
func (r *TokenRepository) Issue(ctx context.Context, username string) (string, error) {
	token := TokenRecord{
		Token:    uuid.NewString(),
		Username: username,
	}
	if err := r.db.WithContext(ctx).Create(&token).Error; err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token.Token, nil
}

// Valid reports whether token was issued by this API
func (r *TokenRepository) Valid(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&TokenRecord{}).Where("token = ?", token).Count(&count).Error
	return err == nil && count > 0
}

// Revoke removes a token
func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&TokenRecord{}, "token = ?", token).Error
}
