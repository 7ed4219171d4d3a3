package clock

import (
	"time"
)

const (
	// DefaultTimeFormat is the wire form of the time field: fixed-width
	// UTC ISO-8601 with microseconds, e.g. "2025-02-20T00:45:58.249062Z".
	DefaultTimeFormat = "2006-01-02T15:04:05.000000Z"

	// DefaultTimeFieldWidth is the width of DefaultTimeFormat output.
	DefaultTimeFieldWidth = 27

	// DefaultCounterHexDigits is the width of the packed counter field.
	DefaultCounterHexDigits = 4

	// DefaultMaxDrift bounds how far logical time may diverge from the
	// physical clock before operations are refused.
	DefaultMaxDrift = time.Hour

	// DefaultSeparator joins the fields of a packed timestamp. It may
	// not appear inside a node id.
	DefaultSeparator = '-'
)

// Config fixes the tunables and pluggable functions of a Clock. The
// zero value is not usable; start from DefaultConfig.
type Config struct {
	// MaxDrift is the largest tolerated difference between a committed
	// timestamp's time and the physical clock sampled in the same
	// operation.
	MaxDrift time.Duration

	// CounterHexDigits is the width of the packed counter field. The
	// largest representable counter is 16^CounterHexDigits - 1.
	CounterHexDigits int

	// TimeFieldWidth is the width, in bytes, of the packed time field.
	TimeFieldWidth int

	// Separator joins the packed fields.
	Separator byte

	// Now reads the physical clock. It is the only side effect the
	// clock performs and the injection point for deterministic tests.
	Now func() time.Time

	// PackTime and UnpackTime convert the time field to and from its
	// fixed-width wire form.
	PackTime   func(time.Time) string
	UnpackTime func(string) (time.Time, error)
}

// DefaultConfig returns the stock configuration: system UTC clock,
// ISO-8601 microsecond time field, 4 hex digit counter, 1h drift bound.
func DefaultConfig() Config {
	return Config{
		MaxDrift:         DefaultMaxDrift,
		CounterHexDigits: DefaultCounterHexDigits,
		TimeFieldWidth:   DefaultTimeFieldWidth,
		Separator:        DefaultSeparator,
		Now:              DefaultNow,
		PackTime:         DefaultPackTime,
		UnpackTime:       DefaultUnpackTime,
	}
}

// DefaultNow reads the system clock in UTC, truncated to microseconds
// so that every reading survives a round trip through the default wire
// format.
func DefaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// DefaultPackTime renders a time in the default fixed-width format.
func DefaultPackTime(t time.Time) string {
	return t.UTC().Format(DefaultTimeFormat)
}

// DefaultUnpackTime parses the default fixed-width format.
func DefaultUnpackTime(s string) (time.Time, error) {
	return time.Parse(DefaultTimeFormat, s)
}

// MaxCounter is the largest counter value the packed format can carry.
func (c Config) MaxCounter() uint64 {
	max := uint64(1)
	for i := 0; i < c.CounterHexDigits; i++ {
		max *= 16
	}
	return max - 1
}

func (c Config) validate() error {
	if c.CounterHexDigits <= 0 {
		return wrapf(ErrConfig, "counter hex digits must be positive, got %d", c.CounterHexDigits)
	}
	if c.TimeFieldWidth <= 0 {
		return wrapf(ErrConfig, "time field width must be positive, got %d", c.TimeFieldWidth)
	}
	if c.MaxDrift < 0 {
		return wrapf(ErrConfig, "max drift must not be negative, got %v", c.MaxDrift)
	}
	if c.Now == nil || c.PackTime == nil || c.UnpackTime == nil {
		return wrapf(ErrConfig, "time functions must all be set")
	}
	return nil
}
