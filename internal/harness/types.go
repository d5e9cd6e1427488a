package harness

import "github.com/primefeed/primefeed/internal/app"

// TraceEvent is the state snapshot taken after one step. Favorites is
// always non-nil so the JSON form stays stable, and NewEntries holds only
// the feed entries that step appended.
type TraceEvent struct {
	Step       int         `json:"step"`
	Action     string      `json:"action"`
	Count      int         `json:"count"`
	Favorites  []int       `json:"favorites"`
	NewEntries []FeedEntry `json:"new_entries,omitempty"`
}

// FeedEntry is the golden-comparable slice of an activity: kind, prime,
// and logical seq. Wall-clock timestamps are deliberately excluded.
type FeedEntry struct {
	Kind  string `json:"kind"`
	Prime int    `json:"prime"`
	Seq   int64  `json:"seq"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in dispatch order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds assertion failure messages. Empty when Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the state after the last step.
	Final app.State `json:"final"`
}

// NewResult creates a passing result for a run to accumulate into.
func NewResult() *Result {
	return &Result{
		Pass:  true,
		Trace: []TraceEvent{},
	}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
