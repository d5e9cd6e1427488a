// Package testutil provides deterministic stand-ins for the runtime's clock
// and token generator, so tests and golden traces produce identical output
// on every run.
package testutil

import (
	"sync"
	"time"

	"github.com/primefeed/primefeed/internal/app"
)

// BaseTime is the wall-clock origin for deterministic stamps. Each stamp's
// timestamp is BaseTime plus one second per sequence number.
var BaseTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Stamper is a deterministic app.Stamper for tests.
//
// Unlike the runtime's clock it can be Reset for test reuse, so the same
// scenario run twice yields identical seq values and timestamps.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Stamper struct {
	mu    sync.Mutex
	seq   int64
	token string
}

// NewStamper creates a stamper whose stamps all carry the given token.
// The first Stamp() has Seq 1 and timestamp BaseTime+1s.
func NewStamper(token string) *Stamper {
	return &Stamper{token: token}
}

// Stamp returns the next deterministic stamp.
func (s *Stamper) Stamp() app.Stamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return app.Stamp{
		Time:  BaseTime.Add(time.Duration(s.seq) * time.Second),
		Seq:   s.seq,
		Token: s.token,
	}
}

// SetToken changes the token attached to subsequent stamps.
func (s *Stamper) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Current returns the last issued sequence number without advancing.
func (s *Stamper) Current() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Reset rewinds the stamper to its initial state.
func (s *Stamper) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
}
