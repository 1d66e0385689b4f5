package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/station-portal/internal/config"
	"github.com/stretchr/testify/require"
)

var requiredVars = map[string]string{
	"AUTH0_CALLBACK_URL":  "http://localhost:8080/callback",
	"AUTH0_CLIENT_ID":     "client-123",
	"AUTH0_CLIENT_SECRET": "secret-123",
	"AUTH0_DOMAIN":        "station.eu.auth0.com",
	"AUTH0_AUDIENCE":      "https://api.station.example",
	"SESSION_SECRET":      "0123456789abcdef0123456789abcdef",
}

// clearEnv unsets keys for the duration of the test
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	for k, v := range requiredVars {
		t.Setenv(k, v)
	}
}

func TestNew(t *testing.T) {
	t.Run("all required variables present", func(t *testing.T) {
		setRequired(t)
		clearEnv(t, "PORT", "SESSION_MAX_AGE", "SESSION_COOKIE_NAME", "BASE_URL", "ENV")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, "client-123", c.GetClientID())
		require.Equal(t, "secret-123", c.GetClientSecret())
		require.Equal(t, "station.eu.auth0.com", c.GetDomain())
		require.Equal(t, "https://station.eu.auth0.com", c.GetProviderBaseURL())
		require.Equal(t, "https://api.station.example", c.GetAudience())
		require.Equal(t, "http://localhost:8080/callback", c.GetCallbackURL())
		require.Equal(t, 24*time.Hour, c.GetMaxSessionAge())
		require.Equal(t, "session", c.GetSessionCookieName())
		require.Equal(t, ":8080", c.GetPort())
		require.Equal(t, "DEV", c.GetEnv())
		require.Empty(t, c.GetBaseURL())
	})

	t.Run("missing variable is named", func(t *testing.T) {
		setRequired(t)
		clearEnv(t, "AUTH0_DOMAIN")

		_, err := config.New()
		require.Error(t, err)
		require.Contains(t, err.Error(), "AUTH0_DOMAIN")
	})

	t.Run("missing session secret", func(t *testing.T) {
		setRequired(t)
		clearEnv(t, "SESSION_SECRET")

		_, err := config.New()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SESSION_SECRET")
	})

	t.Run("short session secret is named", func(t *testing.T) {
		setRequired(t)
		t.Setenv("SESSION_SECRET", "too-short")

		_, err := config.New()
		require.Error(t, err)
		require.Contains(t, err.Error(), "SESSION_SECRET")
		require.Contains(t, err.Error(), "16")
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("PORT", "9000")
		t.Setenv("SESSION_MAX_AGE", "30m")
		t.Setenv("BASE_URL", "https://portal.example.com/")
		t.Setenv("AUTH0_DOMAIN", "https://station.eu.auth0.com/")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, ":9000", c.GetPort())
		require.Equal(t, 30*time.Minute, c.GetMaxSessionAge())
		require.Equal(t, "https://portal.example.com", c.GetBaseURL())
		require.Equal(t, "https://station.eu.auth0.com", c.GetProviderBaseURL())
	})
}

func TestLoad(t *testing.T) {
	keys := make([]string, 0, len(requiredVars))
	for k := range requiredVars {
		keys = append(keys, k)
	}

	t.Run("reads env file", func(t *testing.T) {
		clearEnv(t, keys...)

		envFile := filepath.Join(t.TempDir(), ".env")
		content := ""
		for k, v := range requiredVars {
			content += k + "=" + v + "\n"
		}
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

		c, err := config.Load(envFile)
		require.NoError(t, err)
		require.Equal(t, "client-123", c.GetClientID())
	})

	t.Run("environment wins over file", func(t *testing.T) {
		clearEnv(t, keys...)
		setRequired(t)
		t.Setenv("AUTH0_CLIENT_ID", "from-env")

		envFile := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(envFile, []byte("AUTH0_CLIENT_ID=from-file\n"), 0o600))

		c, err := config.Load(envFile)
		require.NoError(t, err)
		require.Equal(t, "from-env", c.GetClientID())
	})

	t.Run("missing file falls back to environment", func(t *testing.T) {
		setRequired(t)

		c, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		require.Equal(t, "client-123", c.GetClientID())
	})
}
