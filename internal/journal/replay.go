package journal

import (
	"context"
	"fmt"
	"slices"

	"github.com/primefeed/primefeed/internal/app"
)

// FeedSummary is the result of rebuilding the favorites set from the
// journaled activity log. It exists for the replay and trace commands;
// a live session never uses it to rehydrate state.
type FeedSummary struct {
	// Entries is the number of feed entries replayed.
	Entries int
	// Favorites is the favorites set implied by the log: every added prime
	// minus every removed one, sorted ascending.
	Favorites []int
	// LastSeq is the highest seq observed.
	LastSeq int64
}

// Rebuild replays the activity log from the beginning and derives the
// favorites set it implies. Replay is deterministic: the log is read in
// (seq, id) order, so two rebuilds of the same journal always agree.
//
// Removes of primes the replay never saw added are tolerated (the journal
// may have been started mid-session); they simply don't affect the set.
func (j *Journal) Rebuild(ctx context.Context) (FeedSummary, error) {
	activities, err := j.ReadActivities(ctx)
	if err != nil {
		return FeedSummary{}, fmt.Errorf("rebuild feed: %w", err)
	}

	present := make(map[int]bool)
	var lastSeq int64
	for _, a := range activities {
		switch a.Kind {
		case app.ActivityAdded:
			present[a.Prime] = true
		case app.ActivityRemoved:
			delete(present, a.Prime)
		}
		if a.Seq > lastSeq {
			lastSeq = a.Seq
		}
	}

	favorites := make([]int, 0, len(present))
	for p := range present {
		favorites = append(favorites, p)
	}
	slices.Sort(favorites)

	return FeedSummary{
		Entries:   len(activities),
		Favorites: favorites,
		LastSeq:   lastSeq,
	}, nil
}

// VerifyReplay rebuilds the feed twice and confirms both rebuilds agree.
// A divergence means the journal's ordering is not deterministic, which
// would break trace comparison; it is reported as an error, not a panic.
func (j *Journal) VerifyReplay(ctx context.Context) (FeedSummary, error) {
	first, err := j.Rebuild(ctx)
	if err != nil {
		return FeedSummary{}, err
	}

	second, err := j.Rebuild(ctx)
	if err != nil {
		return FeedSummary{}, err
	}

	if first.Entries != second.Entries || first.LastSeq != second.LastSeq {
		return FeedSummary{}, fmt.Errorf("replay divergence: %d/%d entries, last seq %d/%d",
			first.Entries, second.Entries, first.LastSeq, second.LastSeq)
	}
	if len(first.Favorites) != len(second.Favorites) {
		return FeedSummary{}, fmt.Errorf("replay divergence: favorites %v vs %v", first.Favorites, second.Favorites)
	}
	for i := range first.Favorites {
		if first.Favorites[i] != second.Favorites[i] {
			return FeedSummary{}, fmt.Errorf("replay divergence: favorites %v vs %v", first.Favorites, second.Favorites)
		}
	}

	return first, nil
}
