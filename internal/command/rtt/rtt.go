package rtt

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/hupe1980/vivaldi"
	"github.com/hupe1980/vivaldi/blobstore"
	"github.com/hupe1980/vivaldi/internal/command/flags"
	"github.com/hupe1980/vivaldi/snapshot"
	"github.com/hupe1980/vivaldi/vector"
	"github.com/mitchellh/cli"
)

func New(ui cli.Ui) *cmd {
	c := &cmd{UI: ui}
	c.init()
	return c
}

type cmd struct {
	UI    cli.Ui
	flags *flag.FlagSet
	help  string

	dir       string
	dimension int
}

func (c *cmd) init() {
	c.flags = flag.NewFlagSet("", flag.ContinueOnError)
	c.flags.StringVar(&c.dir, "dir", ".",
		"Directory holding the snapshot files of the nodes.")
	c.flags.IntVar(&c.dimension, "dimension", 3,
		"Dimensionality of the stored coordinates, 2 or 3.")
	c.help = flags.Usage(help, c.flags)
}

func (c *cmd) Run(args []string) int {
	if err := c.flags.Parse(args); err != nil {
		return 1
	}

	nodes := c.flags.Args()
	if len(nodes) != 2 {
		c.UI.Error("Two node names must be specified")
		c.UI.Error("")
		c.UI.Error(c.Help())
		return 1
	}

	coords, err := loadCheckpoints(context.Background(), blobstore.NewLocalStore(c.dir))
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error reading snapshots: %s", err))
		return 1
	}

	for _, node := range nodes {
		if _, ok := coords[node]; !ok {
			c.UI.Error(fmt.Sprintf("Could not find a coordinate for node %q", node))
			return 1
		}
	}

	var dist time.Duration
	switch c.dimension {
	case 2:
		dist, err = estimate[vector.Dimension2](coords[nodes[0]], coords[nodes[1]])
	case 3:
		dist, err = estimate[vector.Dimension3](coords[nodes[0]], coords[nodes[1]])
	default:
		c.UI.Error(fmt.Sprintf("Unsupported dimension %d, expected 2 or 3", c.dimension))
		return 1
	}
	if err != nil {
		c.UI.Error(fmt.Sprintf("Error decoding coordinates: %s", err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("Estimated %s <-> %s rtt: %.3f ms", nodes[0], nodes[1], dist.Seconds()*1000.0))
	return 0
}

// loadCheckpoints decodes every snapshot in store, keyed by node name.
// Blobs that are not snapshots are skipped. When a node has several
// snapshots the most recent wins.
func loadCheckpoints(ctx context.Context, store blobstore.BlobStore) (map[string]snapshot.Checkpoint, error) {
	names, err := store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	out := make(map[string]snapshot.Checkpoint, len(names))
	for _, name := range names {
		data, err := store.Get(ctx, name)
		if err != nil {
			return nil, err
		}

		cp, err := snapshot.Decode(data)
		if err != nil || cp.Node == "" {
			continue
		}

		if prev, ok := out[cp.Node]; !ok || cp.SavedAt > prev.SavedAt {
			out[cp.Node] = cp
		}
	}
	return out, nil
}

func estimate[V vector.Vector[V]](a, b snapshot.Checkpoint) (time.Duration, error) {
	ca, err := vivaldi.FromRecord[V](a.Coordinate)
	if err != nil {
		return 0, fmt.Errorf("node %q: %w", a.Node, err)
	}
	cb, err := vivaldi.FromRecord[V](b.Coordinate)
	if err != nil {
		return 0, fmt.Errorf("node %q: %w", b.Node, err)
	}
	return vivaldi.EstimateRTT(ca, cb), nil
}

func (c *cmd) Synopsis() string {
	return synopsis
}

func (c *cmd) Help() string {
	return c.help
}

const synopsis = "Estimates network round trip time between nodes"
const help = `
Usage: vivaldi rtt [options] node1 node2

  Estimates the round trip time between two nodes from the coordinate
  snapshots they saved to a directory.

  Both nodes must have written a snapshot with their node name set. Files
  in the directory that are not snapshots are ignored. If a node saved
  several snapshots, the most recent one is used.
`
