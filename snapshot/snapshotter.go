package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/blobstore"
	"github.com/hupe1980/vivaldi/codec"
	"github.com/hupe1980/vivaldi/vector"
)

// DefaultInterval is the save period used by Run when none is given.
const DefaultInterval = 30 * time.Second

// Option configures a Snapshotter.
type Option func(*options)

type options struct {
	node        string
	codec       codec.Codec
	compression Compression
	logger      *vivaldi.Logger
	now         func() time.Time
}

// WithNode records the node name in every checkpoint. Restore ignores
// checkpoints written for a different node.
func WithNode(node string) Option {
	return func(o *options) { o.node = node }
}

// WithSnapshotCodec sets the payload codec.
func WithSnapshotCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithSnapshotCompression sets the payload compression.
func WithSnapshotCompression(c Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
func WithLogger(l *vivaldi.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = vivaldi.NoopLogger()
		}
		o.logger = l
	}
}

// Snapshotter persists the coordinate of a Client to a blob so an agent can
// resume from its last position after a restart instead of the origin.
type Snapshotter[V vector.Vector[V]] struct {
	client *vivaldi.Client[V]
	store  blobstore.BlobStore
	name   string
	opts   options
}

// New returns a Snapshotter that saves client's coordinate to the blob name
// in store.
func New[V vector.Vector[V]](client *vivaldi.Client[V], store blobstore.BlobStore, name string, optFns ...Option) *Snapshotter[V] {
	o := options{
		codec:  codec.Default,
		logger: vivaldi.NoopLogger(),
		now:    time.Now,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return &Snapshotter[V]{
		client: client,
		store:  store,
		name:   name,
		opts:   o,
	}
}

// Save writes the current coordinate.
func (s *Snapshotter[V]) Save(ctx context.Context) error {
	err := s.save(ctx)
	s.opts.logger.LogSnapshot(ctx, "save", s.name, err)
	return err
}

func (s *Snapshotter[V]) save(ctx context.Context) error {
	cp := Checkpoint{
		Node:       s.opts.node,
		Coordinate: s.client.Coordinate().Record(),
		Resets:     s.client.Stats().Resets,
		SavedAt:    s.opts.now().UnixNano(),
	}

	data, err := Encode(cp, WithCodec(s.opts.codec), WithCompression(s.opts.compression))
	if err != nil {
		return err
	}

	if err := s.store.Put(ctx, s.name, data); err != nil {
		return fmt.Errorf("snapshot: put %s: %w", s.name, err)
	}
	return nil
}

// Restore loads the saved coordinate into the client.
//
// It reports false without error when there is nothing usable to restore:
// the blob does not exist, was written for another node or holds an invalid
// coordinate.
func (s *Snapshotter[V]) Restore(ctx context.Context) (bool, error) {
	ok, err := s.restore(ctx)
	s.opts.logger.LogSnapshot(ctx, "restore", s.name, err)
	return ok, err
}

func (s *Snapshotter[V]) restore(ctx context.Context) (bool, error) {
	data, err := s.store.Get(ctx, s.name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot: get %s: %w", s.name, err)
	}

	cp, err := Decode(data)
	if err != nil {
		return false, err
	}

	if s.opts.node != "" && cp.Node != s.opts.node {
		s.opts.logger.Warn("ignoring snapshot of another node", "name", s.name, "node", cp.Node)
		return false, nil
	}

	coord, err := vivaldi.FromRecord[V](cp.Coordinate)
	if err != nil {
		return false, fmt.Errorf("snapshot: %w", err)
	}

	if err := s.client.SetCoordinate(coord); err != nil {
		s.opts.logger.Warn("ignoring invalid snapshot coordinate", "name", s.name, "error", err)
		return false, nil
	}
	return true, nil
}

// Run saves the coordinate every interval until ctx is done, then saves one
// last time. Failed periodic saves are logged and retried on the next tick.
func (s *Snapshotter[V]) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Save(context.WithoutCancel(ctx))
		case <-ticker.C:
			_ = s.Save(ctx)
		}
	}
}
