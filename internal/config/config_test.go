package config

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(map[string]string{"JWT_SECRET": testSecret}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "store.db", cfg.DatabasePath)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.ConfirmationTokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"JWT_SECRET":             testSecret,
		"JWT_ALGORITHM":          "HS512",
		"PORT":                   "9000",
		"DATABASE_DRIVER":        "postgres",
		"DATABASE_URL":           "postgres://store@localhost/store",
		"ACCESS_TOKEN_TTL":       "5m",
		"CONFIRMATION_TOKEN_TTL": "1h",
		"BCRYPT_COST":            "10",
		"MAX_CONCURRENT_HASHES":  "3",
		"PUBLIC_URL":             "https://store.example.com/",
		"LOG_LEVEL":              "debug",
		"SHUTDOWN_TIMEOUT":       "3s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.ConfirmationTokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 3, cfg.MaxConcurrentHashes)
	assert.Equal(t, "https://store.example.com", cfg.PublicURL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadSecret(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := load(env(nil))
		assert.ErrorContains(t, err, "JWT_SECRET environment variable is required")
	})

	t.Run("too short", func(t *testing.T) {
		_, err := load(env(map[string]string{"JWT_SECRET": "short"}))
		assert.ErrorContains(t, err, "at least 32 characters")
	})

	t.Run("development fallback", func(t *testing.T) {
		cfg, err := load(env(map[string]string{"APP_ENV": "development"}))
		require.NoError(t, err)
		assert.Equal(t, DevelopmentSecret, cfg.JWTSecret)
		assert.True(t, cfg.UsesDevelopmentSecret())
	})

	t.Run("explicit secret wins in development", func(t *testing.T) {
		cfg, err := load(env(map[string]string{"APP_ENV": "development", "JWT_SECRET": testSecret}))
		require.NoError(t, err)
		assert.Equal(t, testSecret, cfg.JWTSecret)
		assert.False(t, cfg.UsesDevelopmentSecret())
	})
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"bad duration", "ACCESS_TOKEN_TTL", "soon", "invalid ACCESS_TOKEN_TTL"},
		{"bad integer", "BCRYPT_COST", "twelve", "invalid BCRYPT_COST"},
		{"cost too low", "BCRYPT_COST", "3", "BCRYPT_COST must be between 4 and 14"},
		{"cost too high", "BCRYPT_COST", "15", "BCRYPT_COST must be between 4 and 14"},
		{"bad log level", "LOG_LEVEL", "loud", "invalid LOG_LEVEL"},
		{"unknown driver", "DATABASE_DRIVER", "mysql", `unknown DATABASE_DRIVER "mysql"`},
		{"postgres without url", "DATABASE_DRIVER", "postgres", "DATABASE_URL is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(env(map[string]string{"JWT_SECRET": testSecret, tt.key: tt.val}))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

// Loading runs before the process logger is installed, so it must stay silent.
func TestLoadDoesNotLog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := load(env(map[string]string{"APP_ENV": "development"}))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
