package types

import "errors"

// Config holds the parameters needed to open a logbook store.
type Config struct {
	// DatabasePath is the path to the SQLite database file. Mandatory:
	// an empty path is a fatal configuration error, never defaulted.
	DatabasePath string `json:"database_path" yaml:"database_path"`

	// BusyTimeoutMS is the SQLite busy timeout in milliseconds.
	// Zero selects the default of 5000.
	BusyTimeoutMS int `json:"busy_timeout_ms" yaml:"busy_timeout_ms"`
}

// Config validation errors.
var (
	ErrDatabasePathEmpty   = errors.New("database path must not be empty")
	ErrBusyTimeoutNegative = errors.New("busy timeout must not be negative")
)

// DefaultBusyTimeoutMS is used when Config.BusyTimeoutMS is zero.
const DefaultBusyTimeoutMS = 5000

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return ErrDatabasePathEmpty
	}
	if c.BusyTimeoutMS < 0 {
		return ErrBusyTimeoutNegative
	}
	return nil
}
