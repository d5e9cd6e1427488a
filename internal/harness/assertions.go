package harness

import (
	"fmt"
	"slices"

	"github.com/primefeed/primefeed/internal/app"
)

// AssertionError is returned when an assertion fails. Expected and Actual
// are human-readable so the message reads well in CLI output and test logs.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s\n  expected: %s\n  actual:   %s",
		e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion against the run result and
// returns one message per failure. All assertions run even after a failure
// so a broken scenario reports everything wrong at once.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(result, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertCount:
		return assertCount(result.Final, a)
	case AssertFavorites:
		return assertFavorites(result.Final, a)
	case AssertFeedCount:
		return assertFeedCount(result.Final, a)
	case AssertFeedKinds:
		return assertFeedKinds(result.Final, a)
	case AssertFeedContains:
		return assertFeedContains(result.Final, a)
	case AssertNthPrime:
		return assertNthPrime(result.Final, a)
	default:
		return &AssertionError{
			Type:     a.Type,
			Expected: "a known assertion type",
			Actual:   fmt.Sprintf("unknown type %q", a.Type),
		}
	}
}

func assertCount(s app.State, a Assertion) error {
	if int64(s.Count) == *a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertCount,
		Expected: fmt.Sprintf("count %d", *a.Value),
		Actual:   fmt.Sprintf("count %d", s.Count),
	}
}

func assertFavorites(s app.State, a Assertion) error {
	expected := a.Primes
	if expected == nil {
		expected = []int{}
	}
	actual := s.FavoritePrimes
	if actual == nil {
		actual = []int{}
	}
	if slices.Equal(expected, actual) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFavorites,
		Expected: fmt.Sprintf("favorites %v", expected),
		Actual:   fmt.Sprintf("favorites %v", actual),
	}
}

func assertFeedCount(s app.State, a Assertion) error {
	if int64(len(s.ActivityFeed)) == *a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertFeedCount,
		Expected: fmt.Sprintf("%d feed entries", *a.Value),
		Actual:   fmt.Sprintf("%d feed entries", len(s.ActivityFeed)),
	}
}

func assertFeedKinds(s app.State, a Assertion) error {
	actual := make([]string, len(s.ActivityFeed))
	for i, entry := range s.ActivityFeed {
		actual[i] = string(entry.Kind)
	}
	if slices.Equal(a.Kinds, actual) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFeedKinds,
		Expected: fmt.Sprintf("feed kinds %v", a.Kinds),
		Actual:   fmt.Sprintf("feed kinds %v", actual),
	}
}

func assertFeedContains(s app.State, a Assertion) error {
	for _, entry := range s.ActivityFeed {
		if string(entry.Kind) == a.Kind && entry.Prime == a.Prime {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertFeedContains,
		Expected: fmt.Sprintf("feed entry {%s %d}", a.Kind, a.Prime),
		Actual:   "not found in feed",
	}
}

func assertNthPrime(s app.State, a Assertion) error {
	if a.Absent {
		if s.NthPrime == nil {
			return nil
		}
		return &AssertionError{
			Type:     AssertNthPrime,
			Expected: "no lookup result",
			Actual:   fmt.Sprintf("result %d", *s.NthPrime),
		}
	}
	if s.NthPrime == nil {
		return &AssertionError{
			Type:     AssertNthPrime,
			Expected: fmt.Sprintf("result %d", *a.Value),
			Actual:   "no lookup result",
		}
	}
	if *s.NthPrime != *a.Value {
		return &AssertionError{
			Type:     AssertNthPrime,
			Expected: fmt.Sprintf("result %d", *a.Value),
			Actual:   fmt.Sprintf("result %d", *s.NthPrime),
		}
	}
	return nil
}
