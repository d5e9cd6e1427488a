package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primefeed/primefeed/internal/app"
)

func resultWithState(s app.State) *Result {
	r := NewResult()
	r.Final = s
	return r
}

func TestAssertCount(t *testing.T) {
	r := resultWithState(app.State{Count: 3})

	assert.Empty(t, EvaluateAssertions(r, []Assertion{{Type: AssertCount, Value: int64p(3)}}))

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertCount, Value: int64p(4)}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "expected: count 4")
	assert.Contains(t, errs[0], "actual:   count 3")
}

func TestAssertFavorites(t *testing.T) {
	r := resultWithState(app.State{FavoritePrimes: []int{3, 7}})

	assert.Empty(t, EvaluateAssertions(r, []Assertion{{Type: AssertFavorites, Primes: []int{3, 7}}}))
	assert.Len(t, EvaluateAssertions(r, []Assertion{{Type: AssertFavorites, Primes: []int{3}}}), 1)

	// nil expected matches an empty set.
	empty := resultWithState(app.State{})
	assert.Empty(t, EvaluateAssertions(empty, []Assertion{{Type: AssertFavorites}}))
}

func TestAssertFeedKindsAndContains(t *testing.T) {
	r := resultWithState(app.State{ActivityFeed: []app.Activity{
		{Kind: app.ActivityAdded, Prime: 7},
		{Kind: app.ActivityRemoved, Prime: 7},
	}})

	assert.Empty(t, EvaluateAssertions(r, []Assertion{
		{Type: AssertFeedKinds, Kinds: []string{"added_favorite_prime", "removed_favorite_prime"}},
		{Type: AssertFeedContains, Kind: "added_favorite_prime", Prime: 7},
		{Type: AssertFeedCount, Value: int64p(2)},
	}))

	errs := EvaluateAssertions(r, []Assertion{
		{Type: AssertFeedKinds, Kinds: []string{"removed_favorite_prime", "added_favorite_prime"}},
		{Type: AssertFeedContains, Kind: "added_favorite_prime", Prime: 11},
	})
	assert.Len(t, errs, 2, "order matters for feed_kinds, value matters for feed_contains")
}

func TestAssertNthPrime(t *testing.T) {
	v := int64(7919)
	withResult := resultWithState(app.State{NthPrime: &v})
	withoutResult := resultWithState(app.State{})

	assert.Empty(t, EvaluateAssertions(withResult, []Assertion{{Type: AssertNthPrime, Value: int64p(7919)}}))
	assert.Empty(t, EvaluateAssertions(withoutResult, []Assertion{{Type: AssertNthPrime, Absent: true}}))

	assert.Len(t, EvaluateAssertions(withResult, []Assertion{{Type: AssertNthPrime, Absent: true}}), 1)
	assert.Len(t, EvaluateAssertions(withoutResult, []Assertion{{Type: AssertNthPrime, Value: int64p(7919)}}), 1)
	assert.Len(t, EvaluateAssertions(withResult, []Assertion{{Type: AssertNthPrime, Value: int64p(104729)}}), 1)
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{Type: AssertCount, Expected: "count 1", Actual: "count 2"}
	assert.Equal(t, "assertion failed: count\n  expected: count 1\n  actual:   count 2", err.Error())
}
