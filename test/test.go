package test

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DefaultTestTimeout is the default timeout for test environments.
const DefaultTestTimeout = 30 * time.Second

// Admin credentials accepted by the fake API unless overridden.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "password123"
)

// DefaultClientTimeout is the per-request timeout of the clients wired to the fake API
const DefaultClientTimeout = 5 * time.Second

// Option represents a configuration option for the test environment.
// Options are applied before the database and server are created.
type Option func(*TestEnvironment)

// WithTimeout returns an option that sets the test environment timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(env *TestEnvironment) {
		if env.cancelFunc != nil {
			env.cancelFunc()
		}
		env.ctx, env.cancelFunc = context.WithTimeout(context.Background(), timeout)
	}
}

// WithCleanupFunc returns an option that adds a cleanup function to be
// called when the environment is cleaned up.
func WithCleanupFunc(cleanup func()) Option {
	return func(env *TestEnvironment) {
		oldCleanup := env.cleanup
		env.cleanup = func() {
			if cleanup != nil {
				cleanup()
			}
			if oldCleanup != nil {
				oldCleanup()
			}
		}
	}
}

// WithAdminCredentials changes the credentials the fake API accepts and the
// ones placed in the environment's config.
func WithAdminCredentials(username, password string) Option {
	return func(env *TestEnvironment) {
		env.adminUsername = username
		env.adminPassword = password
	}
}

// WithRoomConflicts makes the fake API reject overlapping stays in the same
// room with 409. It is off by default because generated bookings pick rooms
// at random and would collide across scenarios.
func WithRoomConflicts() Option {
	return func(env *TestEnvironment) {
		env.roomConflicts = true
	}
}

// WithClientTimeout sets the request timeout of the wired clients
func WithClientTimeout(timeout time.Duration) Option {
	return func(env *TestEnvironment) {
		env.clientTimeout = timeout
	}
}

// WithDB uses the given database instead of a temporary one. The caller
// owns it and must have run the migrations.
func WithDB(db *gorm.DB) Option {
	return func(env *TestEnvironment) {
		env.DB = db
	}
}
