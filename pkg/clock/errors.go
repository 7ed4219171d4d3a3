package clock

import (
	"errors"
	"fmt"
)

var (
	// ErrNodeMismatch means a resumed timestamp belongs to a different
	// node than the clock being constructed.
	ErrNodeMismatch = errors.New("previous timestamp belongs to another node")

	// ErrCounterOverflow means a counter exceeded the configured maximum.
	ErrCounterOverflow = errors.New("counter overflow")

	// ErrClockDrift means logical time diverged from physical time
	// beyond the configured tolerance.
	ErrClockDrift = errors.New("logical time drifted too far from physical time")

	// ErrTimestampFormat means a packed timestamp string does not match
	// the fixed-width layout.
	ErrTimestampFormat = errors.New("malformed packed timestamp")

	// ErrConfig means the clock configuration is internally inconsistent.
	ErrConfig = errors.New("invalid clock configuration")
)

// wrapf attaches context to a sentinel so callers can still match it
// with errors.Is.
func wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
