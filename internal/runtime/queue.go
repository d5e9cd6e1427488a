package runtime

import (
	"sync"

	"github.com/primefeed/primefeed/internal/app"
)

// Dispatch is one queued unit of work: an action plus the correlation token
// of the external request that produced it. Follow-on actions (a lookup
// result re-entering the channel) inherit the token of the request that
// started them; tokens are never minted mid-flow.
type Dispatch struct {
	Action app.Action
	Token  string
}

// dispatchQueue is a thread-safe FIFO queue of pending dispatches.
//
// The queue is unbounded: an async lookup completing while the user keeps
// typing must never block either side. Thread-safety covers external
// enqueuing while the Run loop dequeues; in practice most traffic is
// single-threaded.
//
// A buffered signal channel enables context-aware waiting in the Run loop.
type dispatchQueue struct {
	mu     sync.Mutex
	items  []Dispatch
	closed bool
	signal chan struct{} // signals availability (buffered, size 1)
}

func newDispatchQueue() *dispatchQueue {
	return &dispatchQueue{
		items:  make([]Dispatch, 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// Enqueue appends a dispatch. Safe from any goroutine.
// Returns false if the queue is closed.
func (q *dispatchQueue) Enqueue(d Dispatch) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.items = append(q.items, d)

	// Non-blocking signal; the buffer of 1 coalesces bursts.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue removes the front dispatch without blocking.
// Returns (Dispatch{}, false) when the queue is empty.
func (q *dispatchQueue) TryDequeue() (Dispatch, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Dispatch{}, false
	}

	d := q.items[0]

	// Nil out the slot so the backing array does not retain the action.
	q.items[0] = Dispatch{}

	if len(q.items) == 1 {
		q.items = q.items[:0]
	} else {
		q.items = q.items[1:]
	}

	return d, true
}

// Wait returns the availability signal channel for use in a select
// alongside ctx.Done(). The channel closes when the queue closes, which
// wakes all waiters.
func (q *dispatchQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of pending dispatches.
func (q *dispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close marks the queue closed and wakes any waiters.
func (q *dispatchQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
