// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the lane command queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize caps how many shot request IDs are remembered. Zero means
	// no limit.
	DedupeSize int `koanf:"dedupe_size"`

	// ShutdownTimeoutMS bounds graceful shutdown of the server and worker.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// RequestTimeoutMS bounds how long a handler waits for the lane worker.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		QueueSize:         1024,
		DedupeSize:        4096,
		ShutdownTimeoutMS: 30_000,
		RequestTimeoutMS:  5_000,
	}
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	case c.DedupeSize < 0:
		return fmt.Errorf("%w: dedupe_size must not be negative, got %d", ErrInvalidConfig, c.DedupeSize)
	case c.ShutdownTimeoutMS <= 0:
		return fmt.Errorf("%w: shutdown_timeout_ms must be positive, got %d", ErrInvalidConfig, c.ShutdownTimeoutMS)
	case c.RequestTimeoutMS <= 0:
		return fmt.Errorf("%w: request_timeout_ms must be positive, got %d", ErrInvalidConfig, c.RequestTimeoutMS)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
