// Package catalog stores the coordinates of many nodes so that any of them
// can estimate the round-trip time to any other without measuring it.
//
// Nodes report their coordinates to an Updater, which batches them and
// writes to a Store. MemoryStore serves tests and single process setups;
// DynamoDBStore shares the catalog between processes. CachingStore keeps
// recent lookups in memory in front of either.
//
//	store := catalog.NewDynamoDBStore(dynamodb.NewFromConfig(cfg), "vivaldi-coordinates")
//	updater := catalog.NewUpdater(store, catalog.UpdaterConfig{})
//	go updater.Run(ctx, catalog.DefaultUpdatePeriod)
//
//	_ = updater.Enqueue("node-1", client.Coordinate().Record())
//
//	rtt, err := catalog.EstimateRTT[vector.Dimension3](ctx, store, "node-1", "node-2")
package catalog
