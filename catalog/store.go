package catalog

import (
	"context"

	"github.com/hupe1980/vivaldi"
)

// ErrNotFound is returned when the catalog holds no coordinate for a node.
var ErrNotFound = vivaldi.ErrNotFound

// Entry is the coordinate of a single node.
type Entry struct {
	Node  string                   `json:"node"`
	Coord vivaldi.CoordinateRecord `json:"coord"`
}

// Store is a directory of node coordinates.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put inserts or replaces the coordinates of the given nodes.
	Put(ctx context.Context, entries ...Entry) error

	// Get returns the coordinate of node or ErrNotFound.
	Get(ctx context.Context, node string) (Entry, error)

	// List returns every entry sorted by node name.
	List(ctx context.Context) ([]Entry, error)

	// Delete removes node. Deleting an unknown node is not an error.
	Delete(ctx context.Context, node string) error
}
