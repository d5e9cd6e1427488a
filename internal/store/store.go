// Package store owns the current application state and applies the composed
// reducer on each dispatched action.
//
// The store replaces the original design's ambient "property changed"
// mechanism with an explicit subscriber list: observers subscribe and
// unsubscribe by hand, and every dispatch notifies them synchronously
// before returning. No hidden fan-out.
package store

import (
	"github.com/primefeed/primefeed/internal/reducer"
)

// Store holds a single state value and the reducer that advances it.
//
// Dispatch is fully synchronous and atomic from the caller's perspective:
// the reducer runs, then all current subscribers observe the new state, then
// Dispatch returns. There is no queuing, batching, or cancellation here.
//
// Thread-safety: NONE. The store expects all calls from one goroutine; the
// runtime's single-writer loop (internal/runtime) provides that
// serialization for callers on other goroutines.
type Store[S, A any] struct {
	state  S
	reduce reducer.Reducer[S, A]
	nextID int
	subs   map[int]func(S)
	subOrd []int // notification order = subscription order
}

// New creates a store with the given initial state and reducer.
func New[S, A any](initial S, r reducer.Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:  initial,
		reduce: r,
		subs:   make(map[int]func(S)),
	}
}

// State returns the current state value.
func (st *Store[S, A]) State() S {
	return st.state
}

// Dispatch applies the reducer to the current state and notifies all
// subscribers in subscription order before returning.
func (st *Store[S, A]) Dispatch(a A) {
	st.reduce(&st.state, a)
	for _, id := range st.subOrd {
		if fn, ok := st.subs[id]; ok {
			fn(st.state)
		}
	}
}

// Subscribe registers an observer and returns its unsubscribe function.
//
// Observers are called with the new state after every dispatch, in
// subscription order. Unsubscribing mid-notification takes effect for the
// remainder of the current pass as well: a removed subscriber is skipped.
func (st *Store[S, A]) Subscribe(fn func(S)) (unsubscribe func()) {
	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	st.subOrd = append(st.subOrd, id)

	return func() {
		delete(st.subs, id)
		for i, sid := range st.subOrd {
			if sid == id {
				st.subOrd = append(st.subOrd[:i], st.subOrd[i+1:]...)
				break
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers.
// Useful for tests verifying unsubscribe behavior.
func (st *Store[S, A]) SubscriberCount() int {
	return len(st.subs)
}
