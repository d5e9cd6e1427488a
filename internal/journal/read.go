package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/primefeed/primefeed/internal/app"
)

// LoadCount returns the persisted counter snapshot.
// A missing snapshot is not an error: it returns 0, matching the rule that
// all state resets to defaults when nothing was saved.
func (j *Journal) LoadCount(ctx context.Context) (int, error) {
	var count int
	err := j.db.QueryRowContext(ctx, `
		SELECT count FROM counter WHERE id = 1
	`).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load count: %w", err)
	}
	return count, nil
}

// ReadActivities returns every journaled feed entry in deterministic order:
// ORDER BY seq ASC, id ASC. Returns an empty slice (not nil) when the
// journal holds no activities.
func (j *Journal) ReadActivities(ctx context.Context) ([]app.Activity, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT token, seq, kind, prime, created_at
		FROM activities
		ORDER BY seq ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	activities := []app.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	return activities, nil
}

// ReadActivitiesForToken returns the feed entries for one dispatch token,
// in seq order. Used by the trace command's token filter.
func (j *Journal) ReadActivitiesForToken(ctx context.Context, token string) ([]app.Activity, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT token, seq, kind, prime, created_at
		FROM activities
		WHERE token = ?
		ORDER BY seq ASC, id ASC
	`, token)
	if err != nil {
		return nil, fmt.Errorf("query activities for token: %w", err)
	}
	defer rows.Close()

	activities := []app.Activity{}
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activities: %w", err)
	}

	return activities, nil
}

// LastSeq returns the highest seq in the journal, or 0 when empty.
// Used to resume the runtime's logical clock so new entries never collide
// with journaled ones.
func (j *Journal) LastSeq(ctx context.Context) (int64, error) {
	var seq int64
	err := j.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM activities
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}

// scanActivity reads one activities row.
func scanActivity(rows *sql.Rows) (app.Activity, error) {
	var (
		a         app.Activity
		kind      string
		createdAt string
	)
	if err := rows.Scan(&a.Token, &a.Seq, &kind, &a.Prime, &createdAt); err != nil {
		return app.Activity{}, fmt.Errorf("scan activity: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return app.Activity{}, fmt.Errorf("parse activity timestamp %q: %w", createdAt, err)
	}

	a.Kind = app.ActivityKind(kind)
	a.Timestamp = ts
	return a, nil
}
