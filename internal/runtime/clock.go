package runtime

import "sync/atomic"

// Clock is the monotonic logical clock that orders dispatches and activity
// entries. Every stamp gets a strictly increasing seq value, so:
//
//   - ordering never depends on wall-clock races
//   - the journal replays in the exact order entries were produced
//   - feed ordering is explicit rather than timestamp-derived
//
// Thread-safety: safe for concurrent use (atomic operations), though the
// single-writer loop means one goroutine typically calls Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming from a specific sequence number.
// Used when opening an existing journal so new entries never collide with
// journaled ones.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and advances the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
