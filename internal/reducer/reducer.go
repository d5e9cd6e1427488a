// Package reducer provides the composition kernel for unidirectional state
// management: a Reducer function type plus the Combine and Pullback
// combinators that assemble feature-scoped reducers into one root reducer
// over the whole application state.
//
// Reducers mutate their state slice in place. They must be total over their
// action type (unknown variants are no-ops) and must not perform I/O; any
// external effect is performed outside and fed back in as a later action.
package reducer

import (
	"fmt"
	"log/slog"
)

// Reducer advances one state slice in response to an action.
//
// CONTRACT: a reducer only touches *s. No I/O, no shared mutable globals,
// no dispatching from inside a reducer. Violations break replay determinism.
type Reducer[S, A any] func(s *S, a A)

// Combine returns a reducer that runs every given reducer against the same
// (state, action) pair, in the exact order supplied.
//
// All reducers always run - there is no short-circuit. Effects on the shared
// state are cumulative, so ordering is part of the composed semantics.
//
// The reducers slice is copied to prevent external mutation from changing
// the evaluation order after composition.
func Combine[S, A any](reducers ...Reducer[S, A]) Reducer[S, A] {
	rs := make([]Reducer[S, A], len(reducers))
	copy(rs, reducers)

	return func(s *S, a A) {
		for _, r := range rs {
			r(s, a)
		}
	}
}

// Lens is an explicit bidirectional focus on a sub-state inside a larger
// state value: Get reads the slice out, Set writes a new slice value back.
//
// Both functions must be pure projections. A lawful lens round-trips:
// Set(g, Get(g)) leaves g unchanged, and Get after Set returns what was set.
type Lens[G, L any] struct {
	Get func(g *G) L
	Set func(g *G, l L)
}

// Prism is an explicit embed/extract pair focusing one variant of a tagged
// action union. Extract returns (zero, false) when the global action does
// not belong to the focused variant.
type Prism[GA, LA any] struct {
	Extract func(ga GA) (LA, bool)
	Embed   func(la LA) GA
}

// Pullback lifts a feature reducer over (L, LA) to a reducer over (G, GA).
//
// Dispatch semantics:
//  1. Resolve the action focus. If Extract fails, the pulled-back reducer
//     is a no-op for this dispatch (fails closed).
//  2. Read the focused sub-state with lens.Get.
//  3. Run the local reducer on the extracted local action.
//  4. Write the (possibly mutated) sub-state back with lens.Set.
//
// The global state is untouched whenever the action does not match.
func Pullback[G, L, GA, LA any](r Reducer[L, LA], lens Lens[G, L], prism Prism[GA, LA]) Reducer[G, GA] {
	return func(g *G, ga GA) {
		la, ok := prism.Extract(ga)
		if !ok {
			return
		}
		l := lens.Get(g)
		r(&l, la)
		lens.Set(g, l)
	}
}

// Logging wraps a reducer with structured debug logging: the wrapped reducer
// runs first, then the dispatched action and resulting state snapshot are
// logged. Rendering is deferred to slog, so the wrapper costs nothing when
// debug logging is disabled.
func Logging[S, A any](r Reducer[S, A], name string) Reducer[S, A] {
	return func(s *S, a A) {
		r(s, a)
		slog.Debug("action reduced",
			"reducer", name,
			"action", fmt.Sprintf("%+v", a),
			"state", fmt.Sprintf("%+v", *s),
		)
	}
}
