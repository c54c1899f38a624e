package snapshot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/blobstore"
	"github.com/hupe1980/vivaldi/codec"
	"github.com/hupe1980/vivaldi/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedClient(t *testing.T) *vivaldi.Client[vector.Dimension3] {
	t.Helper()

	c := vivaldi.NewClient[vector.Dimension3](vivaldi.WithRandSource(vector.NewRandSource(1)))
	remote := vivaldi.NewCoordinate(vector.Dimension3{0.02, 0.01, 0}, 0.4, 0.005)
	for range 5 {
		_, err := c.Update("remote", remote, 30*time.Millisecond)
		require.NoError(t, err)
	}
	return c
}

func TestSnapshotter_SaveRestore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	src := trainedClient(t)
	saved := New(src, store, "a.snap",
		WithNode("node-a"),
		WithSnapshotCodec(codec.Msgpack{}),
		WithSnapshotCompression(CompressionZSTD),
	)
	require.NoError(t, saved.Save(ctx))

	dst := vivaldi.NewClient[vector.Dimension3]()
	ok, err := New(dst, store, "a.snap", WithNode("node-a")).Restore(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, src.Coordinate(), dst.Coordinate())
}

func TestSnapshotter_RestoreMissing(t *testing.T) {
	dst := vivaldi.NewClient[vector.Dimension3]()
	before := dst.Coordinate()

	ok, err := New(dst, blobstore.NewMemoryStore(), "missing.snap").Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, dst.Coordinate())
}

func TestSnapshotter_RestoreOtherNode(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, New(trainedClient(t), store, "x.snap", WithNode("node-a")).Save(ctx))

	dst := vivaldi.NewClient[vector.Dimension3]()
	ok, err := New(dst, store, "x.snap", WithNode("node-b")).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotter_RestoreInvalidCoordinate(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	data, err := Encode(Checkpoint{
		Coordinate: vivaldi.CoordinateRecord{Vec: []float64{math.Inf(1), 0, 0}, Error: 1, Height: 1},
	}, WithCodec(codec.Msgpack{}))
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "bad.snap", data))

	dst := vivaldi.NewClient[vector.Dimension3]()
	ok, err := New(dst, store, "bad.snap").Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotter_RestoreWrongDimension(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	require.NoError(t, New(trainedClient(t), store, "d3.snap").Save(ctx))

	dst := vivaldi.NewClient[vector.Dimension2]()
	_, err := New(dst, store, "d3.snap").Restore(ctx)

	var mismatch *vector.ErrDimensionMismatch
	assert.True(t, errors.As(err, &mismatch))
}

func TestSnapshotter_RestoreCorrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "c.snap", []byte("garbage")))

	_, err := New(vivaldi.NewClient[vector.Dimension3](), store, "c.snap").Restore(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSnapshotter_SavedAt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	s := New(trainedClient(t), store, "t.snap", WithNode("n"))
	s.opts.now = func() time.Time { return time.Unix(42, 7) }
	require.NoError(t, s.Save(ctx))

	data, err := store.Get(ctx, "t.snap")
	require.NoError(t, err)
	cp, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int64(42_000_000_007), cp.SavedAt)
	assert.Equal(t, "n", cp.Node)
}

// countingStore counts puts and can be told to fail them.
type countingStore struct {
	*blobstore.MemoryStore

	mu   sync.Mutex
	puts int
	fail bool
}

func (s *countingStore) Put(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	s.puts++
	fail := s.fail
	s.mu.Unlock()

	if fail {
		return errors.New("unavailable")
	}
	return s.MemoryStore.Put(ctx, name, data)
}

func (s *countingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func TestSnapshotter_Run(t *testing.T) {
	store := &countingStore{MemoryStore: blobstore.NewMemoryStore()}
	s := New(trainedClient(t), store, "run.snap")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, 5*time.Millisecond) }()

	require.Eventually(t, func() bool { return store.count() >= 2 }, time.Second, time.Millisecond)
	cancel()

	require.NoError(t, <-done)

	_, err := store.Get(context.Background(), "run.snap")
	require.NoError(t, err)
}

func TestSnapshotter_RunFinalSaveError(t *testing.T) {
	var buf bytes.Buffer
	logger := vivaldi.NewLogger(slog.NewTextHandler(&buf, nil))

	store := &countingStore{MemoryStore: blobstore.NewMemoryStore(), fail: true}
	s := New(trainedClient(t), store, "fail.snap", WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, time.Hour)
	assert.Error(t, err)
	assert.Equal(t, 1, store.count())
	assert.Contains(t, buf.String(), "snapshot failed")
}
