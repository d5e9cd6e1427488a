package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/primefeed/primefeed/internal/app"
)

// AppendActivity inserts one activity feed entry.
//
// Uses ON CONFLICT(token, seq) DO NOTHING for idempotency: replaying a
// dispatch that was already journaled is silently ignored, so retries and
// replays never duplicate feed entries. Other constraint violations (bad
// kind, NOT NULL) still return errors.
//
// Timestamps are stored as RFC 3339 with nanoseconds in UTC so the journal
// text is stable regardless of the writer's local zone.
func (j *Journal) AppendActivity(ctx context.Context, a app.Activity) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO activities
		(token, seq, kind, prime, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(token, seq) DO NOTHING
	`,
		a.Token,
		a.Seq,
		string(a.Kind),
		a.Prime,
		a.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	return nil
}

// SaveCount upserts the single-row counter snapshot. The snapshot is the
// only persisted state a future session restores; everything else resets
// to defaults on load.
func (j *Journal) SaveCount(ctx context.Context, count int) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO counter (id, count)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET count = excluded.count
	`, count)
	if err != nil {
		return fmt.Errorf("save count: %w", err)
	}

	return nil
}
