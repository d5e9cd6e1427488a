package app

import (
	"github.com/primefeed/primefeed/internal/prime"
	"github.com/primefeed/primefeed/internal/reducer"
)

// ActivityFeed wraps a reducer with activity logging. It inspects the action
// BEFORE delegating, appends one feed entry per favorite that will actually
// be added or removed, then calls through to the wrapped reducer.
//
// This wrapper is the ONLY place activity entries are created. Feature
// reducers mutate the favorites set and nothing else, so a favorite add or
// remove produces exactly one feed entry no matter which code path caused
// it.
//
// The predicates here mirror the reducers' mutation conditions exactly:
// a save of a non-prime or already-favorite count adds no entry, a remove
// of a non-favorite adds no entry, and a batch delete adds one entry per
// value resolved from the pre-removal snapshot, in index order.
func ActivityFeed(r reducer.Reducer[State, Action], stamper Stamper) reducer.Reducer[State, Action] {
	appendEntry := func(s *State, kind ActivityKind, p int) {
		stamp := stamper.Stamp()
		s.ActivityFeed = append(s.ActivityFeed, Activity{
			Timestamp: stamp.Time,
			Kind:      kind,
			Prime:     p,
			Seq:       stamp.Seq,
			Token:     stamp.Token,
		})
	}

	return func(s *State, a Action) {
		switch act := a.(type) {
		case PrimeModalAction:
			switch act {
			case SaveFavorite:
				if prime.IsPrime(s.Count) && !s.HasFavorite(s.Count) {
					appendEntry(s, ActivityAdded, s.Count)
				}
			case RemoveFavorite:
				if s.HasFavorite(s.Count) {
					appendEntry(s, ActivityRemoved, s.Count)
				}
			}

		case FavoritesAction:
			for _, v := range favoritesAt(s.FavoritePrimes, act.DeleteIndices) {
				appendEntry(s, ActivityRemoved, v)
			}
		}

		r(s, a)
	}
}
