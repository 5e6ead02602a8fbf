// Package constants provides centralized definitions of constants used throughout the harness
package constants

// Environment variable names
const (
	// EnvName selects the environment file loaded from the config directory (e.g. "test" -> test.env)
	EnvName = "BOOKING_ENV"

	// EnvConfigDir is the directory holding the <env>.env files
	EnvConfigDir = "BOOKING_CONFIG_DIR"

	// EnvBaseURL is the base URL of the booking API under test
	EnvBaseURL = "BOOKING_BASE_URL"

	// EnvAdminUsername is the username used to request administrative tokens
	EnvAdminUsername = "BOOKING_ADMIN_USERNAME"

	// EnvAdminPassword is the password used to request administrative tokens
	EnvAdminPassword = "BOOKING_ADMIN_PASSWORD"

	// EnvHTTPTimeout bounds every HTTP call made by the clients
	EnvHTTPTimeout = "BOOKING_HTTP_TIMEOUT"

	// EnvLogLevel is the logrus level name
	EnvLogLevel = "LOG_LEVEL"
)

// Defaults
const (
	// DefaultEnvName is the environment used when BOOKING_ENV is not set
	DefaultEnvName = "test"

	// DefaultConfigDir is where environment files live relative to the working directory
	DefaultConfigDir = "config"
)
