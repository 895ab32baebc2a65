// Package kv implements the quiver storage engine: a sharded concurrent
// map with TTL-based eviction and per-shard checksummed snapshot files.
//
// Each shard guards its own map with a reader/writer lock, so shards are
// fully parallel with respect to each other. The Store routes keys to
// shards with a hash that is stable across process restarts, because the
// shard assignment determines which snapshot file a key's data lives in.
package kv
