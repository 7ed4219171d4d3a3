// Package clock implements a hybrid logical clock: timestamps that are
// totally ordered, consistent with happens-before across message
// exchanges, and kept within a bounded distance of wall-clock time.
package clock

import (
	"sync"
	"time"
)

// Clock owns the latest issued timestamp for one node and advances it
// on every local event, send and receive. All operations are atomic
// read-modify-write transitions guarded by one mutex, so a single
// instance may be shared by any number of goroutines.
type Clock struct {
	cfg  Config
	node NodeID

	mu      sync.Mutex
	current Timestamp
}

// New constructs a clock for the given node with the default
// configuration, starting from the Unix epoch.
func New(node NodeID) (*Clock, error) {
	return NewWithConfig(node, DefaultConfig())
}

// NewWithConfig constructs a clock for the given node, starting from
// the Unix epoch.
func NewWithConfig(node NodeID, cfg Config) (*Clock, error) {
	c, err := newClock(node, cfg)
	if err != nil {
		return nil, err
	}
	c.current = Timestamp{Time: time.Unix(0, 0).UTC(), Counter: 0, Node: node}
	return c, nil
}

// Resume constructs a clock seeded from a previously issued timestamp,
// typically the last one persisted before a restart. The previous
// timestamp must belong to the same node and must pass the same
// counter and drift checks as any other transition, so corrupt
// persisted state is rejected here rather than on first use.
func Resume(node NodeID, cfg Config, previous Timestamp) (*Clock, error) {
	c, err := newClock(node, cfg)
	if err != nil {
		return nil, err
	}
	if previous.Node != node {
		return nil, wrapf(ErrNodeMismatch, "previous timestamp is from %q, clock is %q", previous.Node, node)
	}
	if err := c.commit(previous, cfg.Now()); err != nil {
		return nil, err
	}
	return c, nil
}

func newClock(node NodeID, cfg Config) (*Clock, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	for i := 0; i < len(node); i++ {
		if node[i] == cfg.Separator {
			return nil, wrapf(ErrTimestampFormat, "node id %q contains separator %q", node, cfg.Separator)
		}
	}
	return &Clock{cfg: cfg, node: node}, nil
}

// Node returns the identity this clock stamps its timestamps with.
func (c *Clock) Node() NodeID {
	return c.node
}

// Current returns the latest issued timestamp without advancing it.
func (c *Clock) Current() Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Event mints a timestamp for a local event. If the logical clock
// already leads physical time the counter is bumped, otherwise the
// clock catches up to physical time with a fresh counter.
func (c *Clock) Event() (Timestamp, error) {
	return c.advance()
}

// Send mints a timestamp for an outgoing message. The algorithm is
// identical to Event; the name marks the call site.
func (c *Clock) Send() (Timestamp, error) {
	return c.advance()
}

func (c *Clock) advance() (Timestamp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.Now()
	var next Timestamp
	if !c.current.Time.Before(now) {
		// The logical clock is at or ahead of physical time; only the
		// counter can move.
		next = c.current.WithCounter(c.current.Counter + 1)
	} else {
		next = c.current.WithTime(now).WithCounter(0)
	}

	if err := c.commit(next, now); err != nil {
		return Timestamp{}, err
	}
	return next, nil
}

// Receive merges a timestamp from another node into this clock. The
// merged time is the max of physical time and both logical times; the
// counter advances past whichever operands supplied the max. The
// result always carries this clock's own node, never the sender's.
func (c *Clock) Receive(incoming Timestamp) (Timestamp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.Now()
	merged := maxTime(now, maxTime(incoming.Time, c.current.Time))

	var counter uint64
	switch {
	case merged.Equal(c.current.Time) && merged.Equal(incoming.Time):
		counter = maxUint64(c.current.Counter, incoming.Counter) + 1
	case merged.Equal(c.current.Time):
		counter = c.current.Counter + 1
	case merged.Equal(incoming.Time):
		counter = incoming.Counter + 1
	default:
		// Physical time strictly dominates both logical times.
		counter = 0
	}

	next := c.current.WithTime(merged).WithCounter(counter)
	if err := c.commit(next, now); err != nil {
		return Timestamp{}, err
	}
	return next, nil
}

// commit validates a candidate timestamp against the counter and drift
// bounds and installs it as current. On failure the clock state is
// untouched, so the clock stays usable after any error.
func (c *Clock) commit(next Timestamp, now time.Time) error {
	if next.Counter > c.cfg.MaxCounter() {
		return wrapf(ErrCounterOverflow, "counter %d exceeds max %d", next.Counter, c.cfg.MaxCounter())
	}
	if drift := absDuration(next.Time.Sub(now)); drift > c.cfg.MaxDrift {
		return wrapf(ErrClockDrift, "drift %v exceeds max %v", drift, c.cfg.MaxDrift)
	}
	c.current = next
	return nil
}

func maxTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return b
	}
	return a
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
