// Package runtime serializes dispatches onto one goroutine.
//
// The store (internal/store) is deliberately not goroutine-safe: all state
// mutation is supposed to happen on one logical thread. The runtime makes
// that true in practice. External callers - the CLI loop, the network
// callback delivering an nth-prime result - enqueue actions from any
// goroutine; the Run loop dequeues them FIFO and dispatches into the store
// from exactly one goroutine.
//
// Each dequeued dispatch is stamped with a strictly increasing logical
// clock value and a correlation token (UUIDv7 per external request), and
// any activity entries it produced are appended to the journal along with
// a fresh counter snapshot. Journal failures are logged and processing
// continues; retrying would make replay non-deterministic.
package runtime
