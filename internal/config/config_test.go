package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name+".env"), []byte(content), 0o600)
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		setEnv    map[string]string
		wantError bool
		validate  func(t *testing.T, c *Config)
	}{
		{
			name: "valid environment file",
			file: "BOOKING_BASE_URL=http://localhost:3000/api/\nBOOKING_ADMIN_USERNAME=admin\nBOOKING_ADMIN_PASSWORD=password123\nBOOKING_HTTP_TIMEOUT=5s\n",
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "staging", c.Name())
				assert.Equal(t, "http://localhost:3000/api", c.BaseURL())
				assert.Equal(t, "admin", c.AdminUsername())
				assert.Equal(t, "password123", c.AdminPassword())
				assert.Equal(t, 5*time.Second, c.Timeout())
				assert.Equal(t, "info", c.LogLevel())
			},
		},
		{
			name: "process environment overrides file",
			file: "BOOKING_BASE_URL=http://localhost:3000\nBOOKING_ADMIN_USERNAME=admin\nBOOKING_ADMIN_PASSWORD=password123\n",
			setEnv: map[string]string{
				"BOOKING_BASE_URL": "http://override:9000",
			},
			validate: func(t *testing.T, c *Config) {
				assert.Equal(t, "http://override:9000", c.BaseURL())
				assert.Equal(t, DefaultTimeout, c.Timeout())
			},
		},
		{
			name:      "missing password",
			file:      "BOOKING_BASE_URL=http://localhost:3000\nBOOKING_ADMIN_USERNAME=admin\n",
			wantError: true,
		},
		{
			name:      "base URL without host",
			file:      "BOOKING_BASE_URL=localhost\nBOOKING_ADMIN_USERNAME=admin\nBOOKING_ADMIN_PASSWORD=x\n",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.setEnv {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			writeEnvFile(t, dir, "staging", tt.file)

			c, err := Load("staging", dir)
			if tt.wantError {
				assert.Error(t, err)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, c)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load("nowhere", t.TempDir())
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "nowhere.env")
}

func TestLoadSelectsEnvironmentFromVariable(t *testing.T) {
	dir := t.TempDir()
	writeEnvFile(t, dir, "ci", "BOOKING_BASE_URL=http://ci:8080\nBOOKING_ADMIN_USERNAME=ci\nBOOKING_ADMIN_PASSWORD=secret\n")
	t.Setenv("BOOKING_ENV", "ci")
	t.Setenv("BOOKING_CONFIG_DIR", dir)

	c, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "ci", c.Name())
	assert.Equal(t, "http://ci:8080", c.BaseURL())
}

func TestNew(t *testing.T) {
	c, err := New("unit", Values{
		BaseURL:       "http://example.com/",
		AdminUsername: "admin",
		AdminPassword: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.Timeout())

	_, err = New("unit", Values{BaseURL: "http://example.com"})
	assert.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BOOKING_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("BOOKING_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BOOKING_TEST_MISSING_KEY", "fallback"))
}
