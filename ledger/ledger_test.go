package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "state", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestMarkAndHasReplied(t *testing.T) {
	ctx := context.Background()
	l := openTest(t)

	ok, err := l.HasReplied(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, l.MarkReplied(ctx, "p1", "c1"))

	ok, err = l.HasReplied(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.HasReplied(ctx, "p2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMarkRepliedUpsert(t *testing.T) {
	ctx := context.Background()
	l := openTest(t)

	require.NoError(t, l.MarkReplied(ctx, "p1", "c1"))
	require.NoError(t, l.MarkReplied(ctx, "p1", "c2"))

	entries, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "c2", entries[0].CommentID)
	assert.False(t, entries[0].RepliedAt.IsZero())
}

func TestLedgerPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.MarkReplied(ctx, "p1", "c1"))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	ok, err := l.HasReplied(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
}
