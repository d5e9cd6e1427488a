package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primefeed/primefeed/internal/app"
)

func TestRebuild_DerivesFavoritesFromLog(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-1", 1, app.ActivityAdded, 7)))
	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-1", 2, app.ActivityAdded, 3)))
	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-2", 3, app.ActivityAdded, 11)))
	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-2", 4, app.ActivityRemoved, 7)))

	summary, err := j.Rebuild(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Entries)
	assert.Equal(t, []int{3, 11}, summary.Favorites)
	assert.Equal(t, int64(4), summary.LastSeq)
}

func TestRebuild_EmptyJournal(t *testing.T) {
	j := setupJournal(t)

	summary, err := j.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Entries)
	assert.Empty(t, summary.Favorites)
	assert.Equal(t, int64(0), summary.LastSeq)
}

func TestRebuild_ToleratesRemoveWithoutAdd(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	// A journal started mid-session may open with a remove.
	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-1", 1, app.ActivityRemoved, 5)))
	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-1", 2, app.ActivityAdded, 3)))

	summary, err := j.Rebuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, summary.Favorites)
}

func TestVerifyReplay_Deterministic(t *testing.T) {
	j := setupJournal(t)
	ctx := context.Background()

	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-1", 1, app.ActivityAdded, 2)))
	require.NoError(t, j.AppendActivity(ctx, testActivity("tok-1", 2, app.ActivityAdded, 5)))

	summary, err := j.VerifyReplay(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, summary.Favorites)
}
