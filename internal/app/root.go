package app

import (
	"github.com/primefeed/primefeed/internal/reducer"
)

// RootReducer assembles the application's composed reducer:
//
//	ActivityFeed(Logging(Combine(pullback(counter), pullback(primeModal),
//	                             pullback(favorites), pullback(lookup))))
//
// Combine order is the declaration order below and never changes after
// construction - evaluation order is part of the composed semantics.
//
// The stamper supplies per-entry metadata for activity feed entries; the
// runtime passes its logical clock, tests pass a deterministic one.
func RootReducer(stamper Stamper) reducer.Reducer[State, Action] {
	core := reducer.Combine(
		reducer.Pullback(CounterReducer, CounterLens, CounterPrism),
		reducer.Pullback(PrimeModalReducer, PrimeModalLens, PrimeModalPrism),
		reducer.Pullback(FavoritesReducer, FavoritesLens, FavoritesPrism),
		reducer.Pullback(LookupReducer, LookupLens, LookupPrism),
	)
	return ActivityFeed(reducer.Logging(core, "root"), stamper)
}
