package clock

import (
	"fmt"
	"strconv"
)

// Pack serializes a timestamp to its wire form:
//
//	<time-field><sep><counter-hex><sep><node-id>
//
// The time field and counter are fixed width so the string can be split
// at known offsets even when the separator appears inside the time
// field. Packing a timestamp whose counter exceeds the configured
// maximum fails, guarding against externally constructed values.
func (c *Clock) Pack(ts Timestamp) (string, error) {
	if ts.Counter > c.cfg.MaxCounter() {
		return "", wrapf(ErrCounterOverflow, "counter %d exceeds max %d", ts.Counter, c.cfg.MaxCounter())
	}

	field := c.cfg.PackTime(ts.Time)
	if len(field) != c.cfg.TimeFieldWidth {
		return "", wrapf(ErrConfig, "time packer produced %d bytes, configured width is %d", len(field), c.cfg.TimeFieldWidth)
	}

	sep := string(c.cfg.Separator)
	counter := fmt.Sprintf("%0*x", c.cfg.CounterHexDigits, ts.Counter)
	return field + sep + counter + sep + string(ts.Node), nil
}

// Unpack parses a packed timestamp. Fields are read at fixed offsets
// derived from the configured widths; everything after the second
// separator is the node id.
func (c *Clock) Unpack(s string) (Timestamp, error) {
	w := c.cfg.TimeFieldWidth
	d := c.cfg.CounterHexDigits
	min := w + 1 + d + 1
	if len(s) < min {
		return Timestamp{}, wrapf(ErrTimestampFormat, "%q is %d bytes, want at least %d", s, len(s), min)
	}
	if s[w] != c.cfg.Separator || s[w+1+d] != c.cfg.Separator {
		return Timestamp{}, wrapf(ErrTimestampFormat, "%q has misplaced separators", s)
	}

	at, err := c.cfg.UnpackTime(s[:w])
	if err != nil {
		return Timestamp{}, wrapf(ErrTimestampFormat, "bad time field %q: %v", s[:w], err)
	}

	counter, err := strconv.ParseUint(s[w+1:w+1+d], 16, 64)
	if err != nil {
		return Timestamp{}, wrapf(ErrTimestampFormat, "bad counter field %q: %v", s[w+1:w+1+d], err)
	}
	if counter > c.cfg.MaxCounter() {
		return Timestamp{}, wrapf(ErrCounterOverflow, "counter %d exceeds max %d", counter, c.cfg.MaxCounter())
	}

	return Timestamp{Time: at, Counter: counter, Node: NodeID(s[min:])}, nil
}

// ReceivePacked unpacks a timestamp received from another node and
// merges it.
func (c *Clock) ReceivePacked(s string) (Timestamp, error) {
	ts, err := c.Unpack(s)
	if err != nil {
		return Timestamp{}, err
	}
	return c.Receive(ts)
}

// SendPacked mints a send timestamp and returns it packed.
func (c *Clock) SendPacked() (string, error) {
	ts, err := c.Send()
	if err != nil {
		return "", err
	}
	return c.Pack(ts)
}

// EventPacked mints a local event timestamp and returns it packed.
func (c *Clock) EventPacked() (string, error) {
	ts, err := c.Event()
	if err != nil {
		return "", err
	}
	return c.Pack(ts)
}
