// Package app defines the application state tree, the hierarchical action
// union, the feature reducers, and the root composition that wires them
// together. The generic composition kernel lives in internal/reducer; this
// package is its reference consumer.
package app

import (
	"slices"
	"time"
)

// State is the whole application state tree.
//
// Only Count survives a restart (see internal/journal); every other field
// resets to its zero value on load. FavoritePrimes is kept sorted ascending
// and duplicate-free by the reducers - nothing else writes to it.
type State struct {
	Count          int        `json:"count"`
	FavoritePrimes []int      `json:"favorite_primes"`
	LoggedInUser   *User      `json:"logged_in_user,omitempty"`
	ActivityFeed   []Activity `json:"activity_feed"`

	// Lookup scratch state: result of the last remote nth-prime lookup and
	// whether one is outstanding. The triggering control is disabled while
	// LookupInFlight is set; there is no cancellation of in-flight lookups.
	NthPrime       *int64 `json:"nth_prime,omitempty"`
	LookupInFlight bool   `json:"lookup_in_flight"`
}

// HasFavorite reports whether n is currently a favorite.
func (s *State) HasFavorite(n int) bool {
	_, found := slices.BinarySearch(s.FavoritePrimes, n)
	return found
}

// ActivityKind tags an activity feed entry.
type ActivityKind string

const (
	// ActivityAdded records a prime entering the favorites set.
	ActivityAdded ActivityKind = "added_favorite_prime"
	// ActivityRemoved records a prime leaving the favorites set.
	ActivityRemoved ActivityKind = "removed_favorite_prime"
)

// Activity is one append-only feed entry. Entries are never mutated after
// insertion; feed order is insertion order and Seq is strictly increasing
// within a session.
type Activity struct {
	Timestamp time.Time    `json:"timestamp"`
	Kind      ActivityKind `json:"kind"`
	Prime     int          `json:"prime"`

	// Seq is the logical-clock stamp assigned at dispatch time.
	Seq int64 `json:"seq"`
	// Token correlates the entry with the external request that caused it.
	Token string `json:"token,omitempty"`
}

// User is a placeholder profile. Nothing populates it yet; it exists so the
// state tree matches the shape downstream features expect.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Stamp carries the per-entry metadata the activity feed wrapper attaches to
// each Activity: wall-clock time plus the runtime's logical clock and the
// current dispatch token.
type Stamp struct {
	Time  time.Time
	Seq   int64
	Token string
}

// Stamper produces a fresh Stamp per activity entry. The runtime implements
// this with its logical clock and UUIDv7 dispatch tokens; tests use the
// deterministic implementations in internal/testutil.
type Stamper interface {
	Stamp() Stamp
}
