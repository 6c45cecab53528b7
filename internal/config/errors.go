package config

import (
	"errors"
)

// Sentinel error kinds for this package. Load wraps every failure in one of
// them so callers can tell a bad value from an unreadable source.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)
