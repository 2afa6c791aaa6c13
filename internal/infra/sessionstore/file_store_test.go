package sessionstore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scapet/scapet-go/internal/domain/session"
)

func testSnapshot() session.Snapshot {
	return session.Snapshot{
		Token: "tok-1",
		User:  session.User{ID: 7, Email: "ana@example.com", FullName: "Ana", Credits: 400},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	_, held, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, held)

	require.NoError(t, store.Save(ctx, testSnapshot()))

	snap, held, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, held)
	require.Equal(t, testSnapshot(), snap)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileStoreSaveReplacesWholeDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))

	updated := testSnapshot()
	updated.Token = "tok-2"
	updated.User.Credits = 150
	require.NoError(t, store.Save(ctx, updated))

	snap, _, err := store.Load(ctx)
	require.NoError(t, err)
	// Token and user travel together; no mixed generations.
	require.Equal(t, "tok-2", snap.Token)
	require.Equal(t, 150, snap.User.Credits)
}

func TestFileStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx), "clearing an absent snapshot succeeds")

	require.NoError(t, store.Save(ctx, testSnapshot()))
	require.NoError(t, store.Clear(ctx))

	_, held, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, held)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, _, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, held, err := store.Load(ctx)
	require.NoError(t, err)
	require.False(t, held)

	require.NoError(t, store.Save(ctx, testSnapshot()))
	snap, held, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, held)
	require.Equal(t, "tok-1", snap.Token)

	require.NoError(t, store.Clear(ctx))
	_, held, err = store.Load(ctx)
	require.NoError(t, err)
	require.False(t, held)
}
