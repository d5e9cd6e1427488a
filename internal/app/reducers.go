package app

import (
	"log/slog"
	"slices"

	"github.com/primefeed/primefeed/internal/prime"
	"github.com/primefeed/primefeed/internal/reducer"
)

// CounterReducer advances the counter slice. Increment and Decrement are
// exact inverses; anything else is a no-op.
func CounterReducer(s *int, a CounterAction) {
	switch a {
	case Increment:
		*s++
	case Decrement:
		*s--
	}
}

// PrimeModalState is the slice of State the prime-checker modal operates on:
// the current count plus the favorites set it saves into.
type PrimeModalState struct {
	Count          int
	FavoritePrimes []int
}

// PrimeModalReducer saves or removes the current count as a favorite.
//
// Save validates primality first - the favorites set only ever contains
// integers confirmed prime at insertion time. A non-prime save is a no-op.
// Neither variant touches the activity feed; feed entries are appended by
// the ActivityFeed wrapper in exactly one place.
func PrimeModalReducer(s *PrimeModalState, a PrimeModalAction) {
	switch a {
	case SaveFavorite:
		if !prime.IsPrime(s.Count) {
			slog.Warn("ignoring save of non-prime favorite", "count", s.Count)
			return
		}
		s.FavoritePrimes = insertFavorite(s.FavoritePrimes, s.Count)
	case RemoveFavorite:
		s.FavoritePrimes = removeFavorite(s.FavoritePrimes, s.Count)
	}
}

// FavoritesReducer deletes favorites by position in the sorted view.
//
// All indices are resolved against one snapshot of the sorted favorites
// taken before any removal, so earlier removals in the same batch cannot
// invalidate later indices.
func FavoritesReducer(s *[]int, a FavoritesAction) {
	for _, v := range favoritesAt(*s, a.DeleteIndices) {
		*s = removeFavorite(*s, v)
	}
}

// LookupState is the slice of State the remote lookup lifecycle maintains.
type LookupState struct {
	NthPrime *int64
	InFlight bool
}

// LookupReducer tracks the nth-prime lookup lifecycle. Started clears the
// previous result and raises the in-flight flag; Finished lowers it and
// records whatever came back (nil on any failure - absence, not an error).
func LookupReducer(s *LookupState, a LookupAction) {
	switch a.Type {
	case LookupStarted:
		s.NthPrime = nil
		s.InFlight = true
	case LookupFinished:
		s.NthPrime = a.Result
		s.InFlight = false
	}
}

// favoritesAt maps indices into the sorted favorites snapshot to the values
// at those positions, preserving index order. Out-of-range indices are
// skipped (fail closed, mirroring the pullback's no-op on a bad action), and
// repeated indices resolve once - a value can only be removed once, so it
// only counts once.
func favoritesAt(favorites []int, indices []int) []int {
	snapshot := slices.Clone(favorites) // one consistent snapshot for the whole batch
	values := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(snapshot) {
			slog.Warn("skipping out-of-range favorite index", "index", idx, "favorites", len(snapshot))
			continue
		}
		if slices.Contains(values, snapshot[idx]) {
			slog.Warn("skipping repeated favorite index", "index", idx)
			continue
		}
		values = append(values, snapshot[idx])
	}
	return values
}

// insertFavorite inserts n keeping the slice sorted and duplicate-free.
func insertFavorite(favorites []int, n int) []int {
	i, found := slices.BinarySearch(favorites, n)
	if found {
		return favorites
	}
	return slices.Insert(favorites, i, n)
}

// removeFavorite deletes n if present, preserving order.
func removeFavorite(favorites []int, n int) []int {
	i, found := slices.BinarySearch(favorites, n)
	if !found {
		return favorites
	}
	return slices.Delete(favorites, i, i+1)
}

// Feature lenses. Explicit get/set pairs - no key paths, no reflection.

// CounterLens focuses State on the counter value.
var CounterLens = reducer.Lens[State, int]{
	Get: func(g *State) int { return g.Count },
	Set: func(g *State, l int) { g.Count = l },
}

// PrimeModalLens focuses State on the prime modal's slice.
var PrimeModalLens = reducer.Lens[State, PrimeModalState]{
	Get: func(g *State) PrimeModalState {
		return PrimeModalState{Count: g.Count, FavoritePrimes: g.FavoritePrimes}
	},
	Set: func(g *State, l PrimeModalState) {
		g.Count = l.Count
		g.FavoritePrimes = l.FavoritePrimes
	},
}

// FavoritesLens focuses State on the favorites set.
var FavoritesLens = reducer.Lens[State, []int]{
	Get: func(g *State) []int { return g.FavoritePrimes },
	Set: func(g *State, l []int) { g.FavoritePrimes = l },
}

// LookupLens focuses State on the lookup scratch state.
var LookupLens = reducer.Lens[State, LookupState]{
	Get: func(g *State) LookupState {
		return LookupState{NthPrime: g.NthPrime, InFlight: g.LookupInFlight}
	},
	Set: func(g *State, l LookupState) {
		g.NthPrime = l.NthPrime
		g.LookupInFlight = l.InFlight
	},
}
