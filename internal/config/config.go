// Package config provides centralized configuration for the application.
// Settings come from environment variables with defaults, validated on
// startup to fail fast on misconfiguration; named parse profiles can
// additionally be loaded from a YAML file.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Parse    ParseConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
	Profiles ProfilesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing a response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout per request (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// ParseConfig holds defaults for CSV parsing requests.
type ParseConfig struct {
	// MaxBodySize is the maximum request body in bytes (default: 32MB)
	MaxBodySize int64 `env:"PARSE_MAX_BODY_SIZE" default:"33554432"`

	// DefaultRowLimit caps data rows when the caller sets none;
	// <= 0 means unlimited (default: -1)
	DefaultRowLimit int `env:"PARSE_DEFAULT_ROW_LIMIT" default:"-1"`

	// DefaultDelimiter separates fields when the caller sets none.
	// One character, or "tab" (default: ",")
	DefaultDelimiter string `env:"PARSE_DEFAULT_DELIMITER" default:","`

	// CleanupColumns controls whether headers are sanitized by default (default: true)
	CleanupColumns bool `env:"PARSE_CLEANUP_COLUMNS" default:"true"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP limit (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ProfilesConfig points at the optional parse-profiles file.
type ProfilesConfig struct {
	// Path is the YAML file holding named parse profiles; empty disables them.
	Path string `env:"PROFILES_PATH"`
}

// Addr returns the server listen address in host:port form.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
