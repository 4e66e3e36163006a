package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ganot/projfix/internal/history"
)

func newStore(t *testing.T) *history.Store {
	t.Helper()
	db, err := history.New(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())
	return history.NewStore(db)
}

func TestRecordAndGetRun(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run := history.Run{
		ID:         "run-1",
		InputPath:  "project.xml",
		Mode:       "repair",
		Violations: 1,
		Repairs:    3,
		Success:    false,
		CreatedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	findings := []history.Finding{
		{RunID: "run-1", Kind: "repair", Category: "Circular Dependencies", Message: "Removed circular PredecessorLink from 'Build' to UID 2"},
		{RunID: "run-1", Kind: "error", Category: "Broken References", Message: "Assignment <UID>1</UID> points to non-existent TaskUID: 42"},
	}
	require.NoError(t, store.RecordRun(ctx, run, findings))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, run.InputPath, got.InputPath)
	require.Equal(t, run.Mode, got.Mode)
	require.Equal(t, run.Violations, got.Violations)
	require.Equal(t, run.Repairs, got.Repairs)
	require.False(t, got.Success)

	stored, err := store.Findings(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	require.Equal(t, "repair", stored[0].Kind)
	require.Equal(t, "error", stored[1].Kind)
}

func TestGetMissingRun(t *testing.T) {
	store := newStore(t)
	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, history.ErrNotFound)
}

func TestListReturnsNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		run := history.Run{
			ID:        id,
			InputPath: "project.xml",
			Mode:      "validate",
			Success:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.RecordRun(ctx, run, nil))
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "run-c", runs[0].ID)
	require.Equal(t, "run-b", runs[1].ID)

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRecordRunRejectsUnknownMode(t *testing.T) {
	store := newStore(t)
	run := history.Run{
		ID:        "run-x",
		InputPath: "project.xml",
		Mode:      "audit",
		CreatedAt: time.Now().UTC(),
	}
	require.Error(t, store.RecordRun(context.Background(), run, nil))
}
