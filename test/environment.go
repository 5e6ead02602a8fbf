package test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/celestiaorg/booking-acceptance/internal/api/client"
	"github.com/celestiaorg/booking-acceptance/internal/config"
)

// TestEnvironment encapsulates all components needed for integration testing.
// It provides a complete test setup with:
//   - File-based SQLite database holding bookings and tokens
//   - Fake booking API served over HTTP
//   - Config pointing at that server and real clients built from it
//   - A log of every request the API received
type TestEnvironment struct {
	t *testing.T // The testing.T instance for this environment

	// Server components
	App      *fiber.App
	Server   *httptest.Server
	API      *BookingAPI
	Requests *RequestLog

	// Client components
	Config        *config.Config
	AuthClient    *client.AuthClient
	BookingClient *client.BookingClient

	// Database components
	DB       *gorm.DB
	Bookings *BookingRepository
	Tokens   *TokenRepository

	adminUsername string
	adminPassword string
	roomConflicts bool
	clientTimeout time.Duration

	// Context management
	ctx        context.Context
	cancelFunc context.CancelFunc

	// Cleanup function
	cleanup     func()
	cleanupOnce sync.Once
}

// NewTestEnvironment creates a new test environment with the given options.
// Cleanup is registered with t and may also be called explicitly.
func NewTestEnvironment(t *testing.T, opts ...Option) *TestEnvironment {
	t.Helper()

	// Create environment with default timeout
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTestTimeout)

	env := &TestEnvironment{
		t:             t,
		ctx:           ctx,
		cancelFunc:    cancel,
		adminUsername: DefaultAdminUsername,
		adminPassword: DefaultAdminPassword,
		clientTimeout: DefaultClientTimeout,
		Requests:      NewRequestLog(),
	}

	// Initialize cleanup function
	env.cleanup = func() {
		if env.Server != nil {
			env.Server.Close()
		}
		if env.cancelFunc != nil {
			env.cancelFunc()
		}
	}

	for _, opt := range opts {
		opt(env)
	}

	setupDB(env)
	SetupServer(env)
	setupClients(env)

	t.Cleanup(env.Cleanup)
	return env
}

func setupDB(env *TestEnvironment) {
	if env.DB == nil {
		db, tmpDir, err := NewFileBasedTestDB()
		env.Require().NoError(err, "Failed to create file-based database")
		env.DB = db

		err = RunMigrations(env.DB)
		env.Require().NoError(err, "Failed to run database migrations")

		// database goes after the server is closed
		oldCleanup := env.cleanup
		env.cleanup = func() {
			if oldCleanup != nil {
				oldCleanup()
			}
			CleanupTestDB(db, tmpDir)
		}
	}

	env.Bookings = NewBookingRepository(env.DB, env.roomConflicts)
	env.Tokens = NewTokenRepository(env.DB)
}

func setupClients(env *TestEnvironment) {
	cfg, err := config.New("fake", config.Values{
		BaseURL:       env.Server.URL,
		AdminUsername: env.adminUsername,
		AdminPassword: env.adminPassword,
		Timeout:       env.clientTimeout,
		LogLevel:      "debug",
	})
	env.Require().NoError(err, "Failed to build config for the fake API")

	env.Config = cfg
	env.AuthClient = client.NewAuthClient(cfg)
	env.BookingClient = client.NewBookingClient(cfg)
}

// Context returns the environment's context, which is automatically
// canceled when the environment is cleaned up.
func (e *TestEnvironment) Context() context.Context {
	return e.ctx
}

// Cleanup tears down the test environment, releasing all resources.
// Calling it more than once has no further effect.
func (e *TestEnvironment) Cleanup() {
	e.cleanupOnce.Do(func() {
		if e.cleanup != nil {
			e.cleanup()
		}
	})
}

// Require returns a require.Assertions instance for this environment.
// This is a convenience method to avoid passing t around.
func (e *TestEnvironment) Require() *require.Assertions {
	return require.New(e.t)
}

// WithTimeout returns a new context with the specified timeout.
// The returned context is a child of the environment's context.
func (e *TestEnvironment) WithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(e.ctx, timeout)
}

// T returns the testing.T instance for this environment.
// This is useful for test helpers that need access to the test instance.
func (e *TestEnvironment) T() *testing.T {
	return e.t
}

// AdminCookie logs in with the admin credentials and returns the Cookie header value
func (e *TestEnvironment) AdminCookie() string {
	e.t.Helper()
	header, ex, err := e.AuthClient.AdminToken(e.ctx, e.Config)
	e.Require().NoError(err)
	e.Require().NotEmpty(header, "admin login failed: %s", ex)
	return header
}

// SeedBooking stores a booking directly, bypassing the API, and returns its id
func (e *TestEnvironment) SeedBooking(record *BookingRecord) int {
	e.t.Helper()
	e.Require().NoError(e.Bookings.Create(e.ctx, record))
	return int(record.ID)
}

// BookingCount returns how many bookings the API currently stores
func (e *TestEnvironment) BookingCount() int64 {
	e.t.Helper()
	n, err := e.Bookings.Count(e.ctx)
	e.Require().NoError(err)
	return n
}
