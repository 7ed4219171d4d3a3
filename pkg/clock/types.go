package clock

import (
	"strings"
	"time"
)

// NodeID identifies one participant in the cluster. Ordering and
// equality are exactly those of the underlying string.
type NodeID string

// ParseNodeID validates a raw identifier for use in packed timestamps.
// The identifier may not contain the default field separator, since the
// packed format could not be split unambiguously.
func ParseNodeID(raw string) (NodeID, error) {
	if strings.ContainsRune(raw, rune(DefaultSeparator)) {
		return "", wrapf(ErrTimestampFormat, "node id %q contains separator %q", raw, DefaultSeparator)
	}
	return NodeID(raw), nil
}

func (n NodeID) String() string {
	return string(n)
}

// Compare returns -1, 0 or 1 as n sorts before, equal to or after m.
func (n NodeID) Compare(m NodeID) int {
	return strings.Compare(string(n), string(m))
}

// Timestamp is one hybrid logical clock reading: a wall-clock-like
// instant, a counter disambiguating events within that instant, and the
// node that produced it. Timestamps are immutable; deriving a new one
// always goes through WithTime or WithCounter.
type Timestamp struct {
	Time    time.Time
	Counter uint64
	Node    NodeID
}

// Compare orders timestamps by time, then counter, then node. This is
// the total order used for every causality decision.
func (t Timestamp) Compare(u Timestamp) int {
	if t.Time.Before(u.Time) {
		return -1
	}
	if t.Time.After(u.Time) {
		return 1
	}
	if t.Counter < u.Counter {
		return -1
	}
	if t.Counter > u.Counter {
		return 1
	}
	return t.Node.Compare(u.Node)
}

// Before reports whether t sorts strictly before u.
func (t Timestamp) Before(u Timestamp) bool {
	return t.Compare(u) < 0
}

// After reports whether t sorts strictly after u.
func (t Timestamp) After(u Timestamp) bool {
	return t.Compare(u) > 0
}

// Equal reports whether t and u are the same reading.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Compare(u) == 0
}

// WithTime returns a copy of t with the time replaced.
func (t Timestamp) WithTime(at time.Time) Timestamp {
	t.Time = at
	return t
}

// WithCounter returns a copy of t with the counter replaced.
func (t Timestamp) WithCounter(c uint64) Timestamp {
	t.Counter = c
	return t
}
