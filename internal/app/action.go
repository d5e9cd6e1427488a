package app

import (
	"fmt"
	"strings"

	"github.com/primefeed/primefeed/internal/reducer"
)

// Action is the closed root of the hierarchical action union. Each feature
// contributes one variant type; the unexported marker keeps the union sealed
// to this package.
type Action interface {
	isAction()
	fmt.Stringer
}

// CounterAction covers the counter screen's intents.
type CounterAction int

const (
	// Increment bumps the counter by one.
	Increment CounterAction = iota + 1
	// Decrement drops the counter by one.
	Decrement
)

func (CounterAction) isAction() {}

func (a CounterAction) String() string {
	switch a {
	case Increment:
		return "counter.increment"
	case Decrement:
		return "counter.decrement"
	default:
		return fmt.Sprintf("counter.unknown(%d)", int(a))
	}
}

// PrimeModalAction covers the prime-checker modal's intents. Both variants
// operate on the current counter value.
type PrimeModalAction int

const (
	// SaveFavorite adds the current count to the favorites set.
	SaveFavorite PrimeModalAction = iota + 1
	// RemoveFavorite removes the current count from the favorites set.
	RemoveFavorite
)

func (PrimeModalAction) isAction() {}

func (a PrimeModalAction) String() string {
	switch a {
	case SaveFavorite:
		return "primeModal.save"
	case RemoveFavorite:
		return "primeModal.remove"
	default:
		return fmt.Sprintf("primeModal.unknown(%d)", int(a))
	}
}

// FavoritesAction covers the favorites list's single intent: batch deletion
// by position in the ascending-sorted favorites view.
type FavoritesAction struct {
	// DeleteIndices are positions into the sorted favorites snapshot taken
	// before any removal. Out-of-range indices are skipped.
	DeleteIndices []int
}

func (FavoritesAction) isAction() {}

func (a FavoritesAction) String() string {
	parts := make([]string, len(a.DeleteIndices))
	for i, idx := range a.DeleteIndices {
		parts[i] = fmt.Sprintf("%d", idx)
	}
	return "favorites.deleteAt(" + strings.Join(parts, ",") + ")"
}

// LookupActionType distinguishes the lookup lifecycle variants.
type LookupActionType int

const (
	// LookupStarted marks an nth-prime request leaving for the network.
	LookupStarted LookupActionType = iota + 1
	// LookupFinished carries the result back into the dispatch channel.
	LookupFinished
)

// LookupAction is the remote nth-prime lookup re-entering the single-writer
// dispatch channel. The network callback never touches state directly; it
// enqueues a LookupFinished action instead.
type LookupAction struct {
	Type LookupActionType
	// N is the requested ordinal (Started only).
	N int
	// Result is the looked-up prime; nil means the lookup yielded no value
	// (network failure, decode failure, missing pod - indistinguishable).
	Result *int64
}

func (LookupAction) isAction() {}

func (a LookupAction) String() string {
	switch a.Type {
	case LookupStarted:
		return fmt.Sprintf("lookup.started(%d)", a.N)
	case LookupFinished:
		if a.Result == nil {
			return "lookup.finished(absent)"
		}
		return fmt.Sprintf("lookup.finished(%d)", *a.Result)
	default:
		return fmt.Sprintf("lookup.unknown(%d)", int(a.Type))
	}
}

// Feature prisms. These are the explicit embed/extract pairs the pullbacks
// use to focus the global Action union onto one feature's variant. Extract
// fails closed: a non-matching action makes the pulled-back reducer a no-op.

// CounterPrism focuses Action onto CounterAction.
var CounterPrism = reducer.Prism[Action, CounterAction]{
	Extract: func(a Action) (CounterAction, bool) {
		ca, ok := a.(CounterAction)
		return ca, ok
	},
	Embed: func(ca CounterAction) Action { return ca },
}

// PrimeModalPrism focuses Action onto PrimeModalAction.
var PrimeModalPrism = reducer.Prism[Action, PrimeModalAction]{
	Extract: func(a Action) (PrimeModalAction, bool) {
		pa, ok := a.(PrimeModalAction)
		return pa, ok
	},
	Embed: func(pa PrimeModalAction) Action { return pa },
}

// FavoritesPrism focuses Action onto FavoritesAction.
var FavoritesPrism = reducer.Prism[Action, FavoritesAction]{
	Extract: func(a Action) (FavoritesAction, bool) {
		fa, ok := a.(FavoritesAction)
		return fa, ok
	},
	Embed: func(fa FavoritesAction) Action { return fa },
}

// LookupPrism focuses Action onto LookupAction.
var LookupPrism = reducer.Prism[Action, LookupAction]{
	Extract: func(a Action) (LookupAction, bool) {
		la, ok := a.(LookupAction)
		return la, ok
	},
	Embed: func(la LookupAction) Action { return la },
}
