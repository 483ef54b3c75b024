package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/gridlint/internal/testutil"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestSQLiteStore_NotOpened(t *testing.T) {
	store := NewSQLiteStore(nil)
	ctx := context.Background()

	_, err := store.CreateRun(ctx, "data")
	require.ErrorIs(t, err, ErrNotOpened)
	require.ErrorIs(t, store.Migrate(), ErrNotOpened)
	_, err = store.ListRuns(ctx, 5)
	require.ErrorIs(t, err, ErrNotOpened)
	require.NoError(t, store.Close())
}

func TestSQLiteStore_MigrationVersion(t *testing.T) {
	store := setupTestStore(t)

	v, err := store.MigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run, err := store.CreateRun(ctx, "data")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "data", got.Root)
	assert.Nil(t, got.CompletedAt)
	assert.Zero(t, got.Duration())

	require.NoError(t, store.AddFileResults(ctx, run.ID, []FileResult{
		{Path: "data/b.csv", HeaderRow: 1, Violations: 3},
		{Path: "data/a.csv", HeaderRow: 2, Violations: 2},
		{Path: "data/c.csv", Error: "permission denied"},
	}))
	require.NoError(t, store.CompleteRun(ctx, run.ID, RunStatusCompleted, ""))

	got, err = store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusCompleted, got.Status)
	assert.Equal(t, 3, got.Files)
	assert.Equal(t, 5, got.Violations)
	assert.Empty(t, got.Error)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.StartedAt))

	files, err := store.FileResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "data/a.csv", files[0].Path)
	assert.Equal(t, 2, files[0].HeaderRow)
	assert.Equal(t, run.ID, files[0].RunID)
	assert.Equal(t, "permission denied", files[2].Error)
}

func TestSQLiteStore_FailedRun(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	run, err := store.CreateRun(ctx, "db")
	require.NoError(t, err)
	require.NoError(t, store.CompleteRun(ctx, run.ID, RunStatusFailed, "connection refused"))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, "connection refused", got.Error)
	assert.Zero(t, got.Files)
}

func TestSQLiteStore_RunNotFound(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	_, err := store.GetRun(ctx, "missing")
	require.ErrorIs(t, err, ErrRunNotFound)
	require.ErrorIs(t, store.CompleteRun(ctx, "missing", RunStatusCompleted, ""), ErrRunNotFound)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, root := range []string{"a", "b", "c"} {
		run, err := store.CreateRun(ctx, root)
		require.NoError(t, err)
		ids = append(ids, run.ID)
	}

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, ids[2], runs[0].ID)
	assert.Equal(t, ids[1], runs[1].ID)

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	require.NoError(t, store.Migrate())
	run, err := store.CreateRun(ctx, "data")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := NewSQLiteStore(nil)
	require.NoError(t, reopened.Open(path))
	defer reopened.Close()
	require.NoError(t, reopened.Migrate())
	assert.Equal(t, path, reopened.Path())

	got, err := reopened.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, "data", got.Root)
}
