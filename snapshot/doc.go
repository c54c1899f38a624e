// Package snapshot persists Vivaldi coordinates across restarts.
//
// A snapshot is a small self-describing binary blob: a magic number, a
// format version, the compression and codec used, followed by a single
// block holding the encoded Checkpoint.
//
// # Usage
//
//	client := vivaldi.NewClient[vector.Dimension3]()
//	snap := snapshot.New(client, blobstore.NewLocalStore(dataDir), "coordinate.snap",
//	    snapshot.WithNode("node-a"),
//	    snapshot.WithSnapshotCompression(snapshot.CompressionZSTD),
//	)
//
//	if _, err := snap.Restore(ctx); err != nil {
//	    return err
//	}
//	go snap.Run(ctx, time.Minute)
package snapshot
