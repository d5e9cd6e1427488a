package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/primefeed/primefeed/internal/app"
	"github.com/primefeed/primefeed/internal/journal"
	"github.com/primefeed/primefeed/internal/store"
)

// Runtime is the single-writer dispatch loop around the application store.
//
// Thread-safety model:
//   - Enqueue(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - NewToken(): safe from any goroutine (delegates to the generator)
//   - State()/Subscribe(): only from the Run goroutine, or before Run starts
//
// All store mutation, journaling, and clock advancement happen in the Run
// goroutine. That single-writer guarantee is what lets the store and the
// reducers stay lock-free.
type Runtime struct {
	store  *store.Store[app.State, app.Action]
	jnl    *journal.Journal // nil for in-memory sessions
	clock  *Clock
	queue  *dispatchQueue
	tokens TokenGenerator
	now    func() time.Time

	// curToken is the token of the dispatch currently being reduced; the
	// activity feed wrapper reads it through Stamp. Only the Run goroutine
	// touches it.
	curToken string

	// journaled counts feed entries already written, so each dispatch only
	// journals its own additions.
	journaled int
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithJournal attaches a journal; every dispatch appends its activity
// entries and refreshes the counter snapshot.
func WithJournal(j *journal.Journal) Option {
	return func(rt *Runtime) {
		rt.jnl = j
	}
}

// WithTokenGenerator overrides the UUIDv7 default (used by tests for
// deterministic tokens).
func WithTokenGenerator(g TokenGenerator) Option {
	return func(rt *Runtime) {
		rt.tokens = g
	}
}

// WithClockAt resumes the logical clock from a specific sequence number,
// typically journal.LastSeq of an existing database.
func WithClockAt(seq int64) Option {
	return func(rt *Runtime) {
		rt.clock = NewClockAt(seq)
	}
}

// WithNow overrides the wall-clock source (used by tests for fixed
// timestamps in golden traces).
func WithNow(now func() time.Time) Option {
	return func(rt *Runtime) {
		rt.now = now
	}
}

// New creates a runtime owning a store initialized with the given state and
// the application's root reducer. The runtime itself is the root reducer's
// stamper: activity entries get this clock's seq values and the current
// dispatch token.
func New(initial app.State, opts ...Option) *Runtime {
	rt := &Runtime{
		clock:  NewClock(),
		queue:  newDispatchQueue(),
		tokens: UUIDv7Generator{},
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(rt)
	}

	rt.store = store.New(initial, app.RootReducer(rt))
	rt.journaled = len(initial.ActivityFeed)
	return rt
}

// Stamp implements app.Stamper. Called by the activity feed wrapper once
// per entry, from the Run goroutine, while a dispatch is being reduced.
func (rt *Runtime) Stamp() app.Stamp {
	return app.Stamp{
		Time:  rt.now(),
		Seq:   rt.clock.Next(),
		Token: rt.curToken,
	}
}

// NewToken mints a correlation token for an external request. Each user
// command or webhook-style trigger calls NewToken once; every action it
// causes, including async results re-entering the queue, carries the same
// token.
func (rt *Runtime) NewToken() string {
	return rt.tokens.Generate()
}

// Enqueue submits a dispatch for processing by the Run loop.
// Safe from any goroutine. Returns false once the runtime is stopped.
func (rt *Runtime) Enqueue(d Dispatch) bool {
	return rt.queue.Enqueue(d)
}

// QueueLen returns the number of pending dispatches.
// Useful for monitoring and tests.
func (rt *Runtime) QueueLen() int {
	return rt.queue.Len()
}

// State returns the current application state.
// Only valid from the Run goroutine or while the loop is not running.
func (rt *Runtime) State() app.State {
	return rt.store.State()
}

// Subscribe registers a state observer on the underlying store.
// Observers run on the Run goroutine during dispatch.
func (rt *Runtime) Subscribe(fn func(app.State)) (unsubscribe func()) {
	return rt.store.Subscribe(fn)
}

// Clock returns the runtime's logical clock, for stamping done outside the
// reducer path (tests, diagnostics).
func (rt *Runtime) Clock() *Clock {
	return rt.clock
}

// Run starts the single-writer dispatch loop and blocks until the context
// is cancelled or Stop is called.
//
// Must be called from exactly ONE goroutine. Journal errors are logged with
// the dispatch context and processing continues - a retry would reorder the
// journal and break replay determinism.
func (rt *Runtime) Run(ctx context.Context) error {
	slog.Info("runtime starting")

	for {
		d, ok := rt.queue.TryDequeue()
		if ok {
			rt.Apply(ctx, d)
			continue
		}

		select {
		case <-ctx.Done():
			slog.Info("runtime stopping: context cancelled")
			rt.queue.Close()
			return ctx.Err()

		case <-rt.queue.Wait():
			// The signal channel closes when the queue closes; an empty
			// closed queue means a graceful stop.
			if rt.queue.Len() == 0 {
				slog.Info("runtime stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop gracefully shuts down the runtime: the queue closes, Run drains
// nothing further and returns.
func (rt *Runtime) Stop() {
	rt.queue.Close()
}

// Apply dispatches one action into the store and journals its effects.
//
// Called by Run for each dequeued dispatch. It may also be called directly
// for one-shot batch use (the dispatch CLI command) - but only when the Run
// loop is not running, preserving the single-writer guarantee.
func (rt *Runtime) Apply(ctx context.Context, d Dispatch) {
	rt.curToken = d.Token

	slog.Debug("dispatching",
		"action", d.Action.String(),
		"token", d.Token,
	)

	rt.store.Dispatch(d.Action)

	if rt.jnl == nil {
		return
	}

	state := rt.store.State()
	for _, a := range state.ActivityFeed[rt.journaled:] {
		if err := rt.jnl.AppendActivity(ctx, a); err != nil {
			slog.Error("journal append failed",
				"error", err,
				"action", d.Action.String(),
				"token", d.Token,
				"seq", a.Seq,
				"prime", a.Prime,
			)
		}
	}
	rt.journaled = len(state.ActivityFeed)

	if err := rt.jnl.SaveCount(ctx, state.Count); err != nil {
		slog.Error("journal snapshot failed",
			"error", err,
			"action", d.Action.String(),
			"token", d.Token,
			"count", state.Count,
		)
	}
}
