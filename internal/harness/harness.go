package harness

import (
	"context"
	"slices"
	"time"

	"github.com/primefeed/primefeed/internal/app"
	"github.com/primefeed/primefeed/internal/runtime"
	"github.com/primefeed/primefeed/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// Each scenario gets a fresh in-memory runtime: no journal, the wall clock
// pinned to testutil.BaseTime, and one fixed token stamped on every step.
// The logical clock still advances per activity entry, so the trace shows
// real seq assignment, deterministically.
func Run(scenario *Scenario) (*Result, error) {
	token := scenario.Token
	if token == "" {
		token = defaultToken
	}

	rt := runtime.New(
		app.State{Count: scenario.Initial.Count},
		runtime.WithNow(func() time.Time { return testutil.BaseTime }),
	)

	ctx := context.Background()
	result := NewResult()

	for i, step := range scenario.Steps {
		action, err := parseStep(step)
		if err != nil {
			// LoadScenario validates steps; reaching this means the scenario
			// was built by hand. Fail the run rather than the process.
			return nil, err
		}

		before := len(rt.State().ActivityFeed)
		rt.Apply(ctx, runtime.Dispatch{Action: action, Token: token})
		state := rt.State()

		result.Trace = append(result.Trace, TraceEvent{
			Step:       i,
			Action:     action.String(),
			Count:      state.Count,
			Favorites:  favoritesSnapshot(state.FavoritePrimes),
			NewEntries: feedEntries(state.ActivityFeed[before:]),
		})
	}

	result.Final = rt.State()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// favoritesSnapshot copies the favorites so trace events don't alias the
// live state, and never emits nil (JSON stability).
func favoritesSnapshot(favorites []int) []int {
	if len(favorites) == 0 {
		return []int{}
	}
	return slices.Clone(favorites)
}

// feedEntries projects activities down to their golden-comparable fields.
func feedEntries(activities []app.Activity) []FeedEntry {
	if len(activities) == 0 {
		return nil
	}
	entries := make([]FeedEntry, len(activities))
	for i, a := range activities {
		entries[i] = FeedEntry{
			Kind:  string(a.Kind),
			Prime: a.Prime,
			Seq:   a.Seq,
		}
	}
	return entries
}
