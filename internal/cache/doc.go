// Package cache provides a generic, mutex guarded LRU cache.
//
// The catalog uses it to keep recently looked up coordinates in memory in
// front of a remote store.
package cache
