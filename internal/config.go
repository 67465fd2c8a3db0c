package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/skald/internal/store"
)

// minSecretLength is the minimum signing secret size in bytes. Anything
// shorter undermines the HMAC.
const minSecretLength = 32

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Storage StorageConfig     `yaml:"storage"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StorageConfig selects and tunes the backing store.
//
// Driver is "postgres" (pgx, goose migrations) or "sqlite" (local-first).
// MaxConns bounds the connection pool; callers beyond the bound queue
// rather than fail. QueryTimeout bounds each individual store call.
type StorageConfig struct {
	Driver       string        `yaml:"driver"`
	DSN          string        `yaml:"dsn"`
	MaxConns     int           `yaml:"max_conns"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(store.DriverPostgres, store.DriverSQLite)),
		validation.Field(&c.DSN, validation.Required),
		validation.Field(&c.MaxConns, validation.Min(0)),
	)
}

// StoreConfig converts to the store package's config type.
func (c *StorageConfig) StoreConfig() store.Config {
	return store.Config{
		Driver:       c.Driver,
		DSN:          c.DSN,
		MaxConns:     c.MaxConns,
		QueryTimeout: c.QueryTimeout,
	}
}

// AuthConfig holds the session-auth configuration.
//
// Secret signs session tokens and has no default: a process without one
// must not start. SessionLifetime is both the token validity window and
// the cookie max-age.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	SessionLifetime time.Duration `yaml:"session_lifetime"`
	CookieName      string        `yaml:"cookie_name"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Secret, validation.Required, validation.Length(minSecretLength, 0)),
		validation.Field(&c.CookieName, validation.Required),
	); err != nil {
		return err
	}
	if c.SessionLifetime <= 0 {
		return fmt.Errorf("auth: session_lifetime must be positive, got %s", c.SessionLifetime)
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
// The auth secret deliberately has no default.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Storage: StorageConfig{
			Driver:       store.DriverSQLite,
			DSN:          "./skald.db",
			MaxConns:     10,
			QueryTimeout: store.DefaultQueryTimeout,
		},
		Auth: AuthConfig{
			SessionLifetime: 4 * 7 * 24 * time.Hour, // 4 weeks
			CookieName:      "token",
		},
	}
}
