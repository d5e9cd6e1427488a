package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primefeed/primefeed/internal/app"
)

func TestDispatchQueue_FIFO(t *testing.T) {
	q := newDispatchQueue()

	require.True(t, q.Enqueue(Dispatch{Action: app.CounterAction(app.Increment), Token: "t1"}))
	require.True(t, q.Enqueue(Dispatch{Action: app.CounterAction(app.Decrement), Token: "t2"}))
	assert.Equal(t, 2, q.Len())

	d, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, "t1", d.Token)

	d, ok = q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, "t2", d.Token)

	_, ok = q.TryDequeue()
	assert.False(t, ok, "empty queue dequeues nothing")
}

func TestDispatchQueue_EnqueueAfterClose(t *testing.T) {
	q := newDispatchQueue()
	q.Close()

	assert.False(t, q.Enqueue(Dispatch{Action: app.CounterAction(app.Increment)}))
}

func TestDispatchQueue_CloseIsIdempotent(t *testing.T) {
	q := newDispatchQueue()
	q.Close()
	q.Close() // must not panic on double close
}

func TestDispatchQueue_SignalCoalesces(t *testing.T) {
	q := newDispatchQueue()

	q.Enqueue(Dispatch{Action: app.CounterAction(app.Increment)})
	q.Enqueue(Dispatch{Action: app.CounterAction(app.Increment)})

	// One buffered signal is enough: the consumer drains with TryDequeue.
	<-q.Wait()
	drained := 0
	for {
		if _, ok := q.TryDequeue(); !ok {
			break
		}
		drained++
	}
	assert.Equal(t, 2, drained)
}
