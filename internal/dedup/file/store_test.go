package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedisum/summarybot/internal/dedup/file"
)

func TestOpenCreatesMissingLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "assets", "processed_posts.txt")
	store, err := file.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	seen, err := store.Contains(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, seen)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := file.Open("  ")
	assert.Error(t, err)
}

func TestAddThenContains(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed_posts.txt")
	store, err := file.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "p1"))
	require.NoError(t, store.Add(ctx, "p2"))

	seen, err := store.Contains(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, seen)

	// Adding twice is a no-op, not a second line.
	require.NoError(t, store.Add(ctx, "p1"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "p1\np2\n", string(data))
}

func TestStoreSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "processed_posts.txt")
	ctx := context.Background()

	store, err := file.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, "p1"))
	require.NoError(t, store.Add(ctx, "p2"))
	require.NoError(t, store.Close())

	reopened, err := file.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	for _, id := range []string{"p1", "p2"} {
		seen, err := reopened.Contains(ctx, id)
		require.NoError(t, err)
		assert.True(t, seen, "expected %s to survive restart", id)
	}

	require.NoError(t, reopened.Add(ctx, "p3"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "p1\np2\np3\n", string(data))
}
