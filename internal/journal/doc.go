// Package journal provides durable storage for primefeed dispatches.
//
// Two things are persisted:
//
//   - the counter value, as a single-row snapshot (the only piece of state
//     that is restored on the next session)
//   - the activity feed, as an append-only log of favorite add/remove
//     entries stamped with the runtime's logical clock and dispatch token
//
// The journal uses SQLite with WAL mode for concurrent read access while
// the single-writer runtime appends. Activity writes are idempotent on
// (token, seq) so a crashed-and-retried dispatch never duplicates entries.
//
// The feed is diagnostic: the trace and replay commands read it, but a live
// session never rehydrates favorites from it - only the counter snapshot
// survives a restart.
package journal
