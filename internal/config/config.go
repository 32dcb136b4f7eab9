// Package config loads server settings from defaults overlaid with
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// DevelopmentSecret signs tokens when APP_ENV=development and JWT_SECRET is
// unset. It is public and must never be used by a deployed server.
const DevelopmentSecret = "9b73f2a1bdd7ae163444473d29a6885ffa22ab26117068f72a5a56a74d12d1fc"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings for the server.
type Config struct {
	Env                  string
	Port                 string
	DatabaseDriver       string
	DatabasePath         string
	DatabaseURL          string
	JWTSecret            string
	JWTAlgorithm         string
	AccessTokenTTL       time.Duration
	ConfirmationTokenTTL time.Duration
	BcryptCost           int
	MaxConcurrentHashes  int
	PublicURL            string
	LogLevel             slog.Level
	ShutdownTimeout      time.Duration
}

// LoadDefaults populates c with development defaults. JWTSecret is left
// empty so that a real secret has to be supplied.
func (c *Config) LoadDefaults() {
	c.Env = "production"
	c.Port = "8080"
	c.DatabaseDriver = DriverSQLite
	c.DatabasePath = "store.db"
	c.JWTAlgorithm = "HS256"
	c.AccessTokenTTL = 30 * time.Minute
	c.ConfirmationTokenTTL = 24 * time.Hour
	c.BcryptCost = 12
	c.LogLevel = slog.LevelInfo
	c.ShutdownTimeout = 10 * time.Second
}

// Load builds a Config from defaults and the process environment, then validates it.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("APP_ENV", &cfg.Env)
	str("PORT", &cfg.Port)
	str("DATABASE_DRIVER", &cfg.DatabaseDriver)
	str("DATABASE_PATH", &cfg.DatabasePath)
	str("DATABASE_URL", &cfg.DatabaseURL)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("JWT_ALGORITHM", &cfg.JWTAlgorithm)
	str("PUBLIC_URL", &cfg.PublicURL)

	var errs []error
	duration := func(key string, dst *time.Duration) {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	duration("ACCESS_TOKEN_TTL", &cfg.AccessTokenTTL)
	duration("CONFIRMATION_TOKEN_TTL", &cfg.ConfirmationTokenTTL)
	duration("SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout)

	integer := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid %s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	integer("BCRYPT_COST", &cfg.BcryptCost)
	integer("MAX_CONCURRENT_HASHES", &cfg.MaxConcurrentHashes)

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("invalid LOG_LEVEL: %w", err))
		}
	}

	if cfg.JWTSecret == "" && cfg.Env == "development" {
		cfg.JWTSecret = DevelopmentSecret
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UsesDevelopmentSecret reports whether tokens are signed with the public
// DevelopmentSecret.
func (c *Config) UsesDevelopmentSecret() bool {
	return c.JWTSecret == DevelopmentSecret
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	} else if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 characters for HMAC security"))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost))
	}
	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.DatabaseDriver))
	}
	return errors.Join(errs...)
}
