// Package config resolves the environment the harness runs against.
//
// Configuration is resolved once per process into a *Config value that is
// passed explicitly to every collaborator. Values come from <dir>/<env>.env,
// with the process environment taking precedence over the file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/celestiaorg/booking-acceptance/internal/constants"
)

// DefaultTimeout is used when an environment does not set BOOKING_HTTP_TIMEOUT
const DefaultTimeout = 30 * time.Second

// Values holds the raw settings of one environment
type Values struct {
	BaseURL       string        `env:"BOOKING_BASE_URL,required,notEmpty"`
	AdminUsername string        `env:"BOOKING_ADMIN_USERNAME,required,notEmpty"`
	AdminPassword string        `env:"BOOKING_ADMIN_PASSWORD,required,notEmpty"`
	Timeout       time.Duration `env:"BOOKING_HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Config is the immutable configuration of the active environment
type Config struct {
	name   string
	values Values
}

// New validates values and returns a Config for the named environment
func New(name string, values Values) (*Config, error) {
	if values.Timeout <= 0 {
		values.Timeout = DefaultTimeout
	}
	values.BaseURL = strings.TrimRight(values.BaseURL, "/")

	c := &Config{name: name, values: values}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads <dir>/<name>.env and overlays the process environment.
// An empty name falls back to BOOKING_ENV and then to "test"; an empty dir
// falls back to BOOKING_CONFIG_DIR and then to "config".
func Load(name, dir string) (*Config, error) {
	if name == "" {
		name = GetEnv(constants.EnvName, constants.DefaultEnvName)
	}
	if dir == "" {
		dir = GetEnv(constants.EnvConfigDir, constants.DefaultConfigDir)
	}

	path := filepath.Join(dir, name+".env")
	fileVars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read environment file %s: %w", path, err)
	}

	environ := fileVars
	for k, v := range env.ToMap(os.Environ()) {
		environ[k] = v
	}

	var values Values
	if err := env.ParseWithOptions(&values, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse environment %q: %w", name, err)
	}
	return New(name, values)
}

// Validate checks that the configuration can reach an API
func (c *Config) Validate() error {
	if c.values.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.values.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q: scheme and host are required", c.values.BaseURL)
	}
	if c.values.AdminUsername == "" || c.values.AdminPassword == "" {
		return errors.New("admin credentials are required")
	}
	return nil
}

// Name returns the environment name, e.g. "test"
func (c *Config) Name() string { return c.name }

// BaseURL returns the API base URL without a trailing slash
func (c *Config) BaseURL() string { return c.values.BaseURL }

// AdminUsername returns the administrative username
func (c *Config) AdminUsername() string { return c.values.AdminUsername }

// AdminPassword returns the administrative password
func (c *Config) AdminPassword() string { return c.values.AdminPassword }

// Timeout returns the per-call HTTP timeout
func (c *Config) Timeout() time.Duration { return c.values.Timeout }

// LogLevel returns the configured log level name
func (c *Config) LogLevel() string { return c.values.LogLevel }

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
