package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/vivaldi/internal/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Put a blob
	blobName := "nodes/node-a.snap"
	data := []byte("hello world, this is a test blob for vivaldi")

	require.NoError(t, store.Put(ctx, blobName, data))

	// Verify file exists on disk
	_, err := os.Stat(filepath.Join(tmpDir, "nodes", "node-a.snap"))
	require.NoError(t, err)

	// 2. Get
	got, err := store.Get(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// 3. Overwrite
	require.NoError(t, store.Put(ctx, blobName, []byte("v2")))
	got, err = store.Get(ctx, blobName)
	require.NoError(t, err)
	require.Equal(t, "v2", string(got))

	// 4. List
	require.NoError(t, store.Put(ctx, "other.snap", []byte("x")))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"nodes/node-a.snap", "other.snap"}, names)

	names, err = store.List(ctx, "nodes/")
	require.NoError(t, err)
	require.Equal(t, []string{"nodes/node-a.snap"}, names)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, blobName))
	_, err = store.Get(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine
	require.NoError(t, store.Delete(ctx, blobName))
}

func TestLocalBlobStore_NoTempFilesLeft(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	for range 5 {
		require.NoError(t, store.Put(context.Background(), "a.snap", []byte("data")))
	}

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.snap", entries[0].Name())
}

func TestLocalBlobStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "does-not-exist"))

	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_CanceledContext(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "a", []byte("x")), context.Canceled)
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalBlobStore_FailedWriteCleansUp(t *testing.T) {
	tests := []struct {
		name  string
		fault fs.Fault
	}{
		{"write", fs.Fault{FailAfterBytes: 2}},
		{"sync", fs.Fault{FailAfterBytes: -1, FailOnSync: true}},
		{"close", fs.Fault{FailAfterBytes: -1, FailOnClose: true}},
		{"rename", fs.Fault{FailAfterBytes: -1, FailOnRename: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			ffs := fs.NewFaultyFS(nil)
			ffs.AddRule(".tmp-", tt.fault)
			store := NewLocalStore(tmpDir, WithFileSystem(ffs))

			err := store.Put(context.Background(), "a.snap", []byte("payload"))
			require.ErrorIs(t, err, fs.ErrInjected)

			entries, err := os.ReadDir(tmpDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestLocalBlobStore_FailedWriteKeepsPrevious(t *testing.T) {
	tmpDir := t.TempDir()
	ctx := context.Background()

	require.NoError(t, NewLocalStore(tmpDir).Put(ctx, "a.snap", []byte("v1")))

	ffs := fs.NewFaultyFS(nil)
	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
	store := NewLocalStore(tmpDir, WithFileSystem(ffs))

	require.Error(t, store.Put(ctx, "a.snap", []byte("v2")))

	got, err := store.Get(ctx, "a.snap")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))
}
