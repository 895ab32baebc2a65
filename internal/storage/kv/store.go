package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/quiverdb/quiver/internal/core/domain"
)

// shardFileName returns the snapshot file name for shard index i.
func shardFileName(i int) string {
	return fmt.Sprintf("shard-%d", i)
}

// Store routes keys to shards and owns the snapshot directory.
//
// The shard count is fixed at construction: the key-to-shard mapping is
// a pure function of the key and the shard count, so recovering with a
// different count silently produces a different routing than the one
// that wrote the snapshot files. Callers must pass the same count they
// persisted with.
type Store struct {
	shards []*Shard
	dir    string

	// flushed tracks the entry count observed at the most recent
	// successful flush of each shard, as a change-detection heuristic.
	// It is updated under mu before the snapshot I/O; the watermark can
	// therefore reorder with the I/O of a concurrent flush pass, which
	// is benign because at most one flush pass runs at a time (the
	// background flusher is the only caller by construction).
	mu      sync.Mutex
	flushed map[int]int
}

// New creates a store with shardCount empty shards, creating dir if
// absent.
func New(shardCount int, dir string) (*Store, error) {
	if shardCount < 1 {
		return nil, domain.ErrBadRequest.WithDetails(
			fmt.Sprintf("shard count must be positive, got %d", shardCount))
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, domain.ErrSnapshotIO.WithCause(err)
	}
	shards := make([]*Shard, shardCount)
	for i := range shards {
		shards[i] = NewShard()
	}
	return &Store{
		shards:  shards,
		dir:     dir,
		flushed: make(map[int]int),
	}, nil
}

// NewFromDisk rebuilds a store from the snapshot files in dir. The dir
// must exist. For each shard index, a missing file yields an empty
// shard; a corrupt or undecodable file is fatal to construction.
func NewFromDisk(shardCount int, dir string) (*Store, error) {
	if shardCount < 1 {
		return nil, domain.ErrBadRequest.WithDetails(
			fmt.Sprintf("shard count must be positive, got %d", shardCount))
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrDataDirNotFound.WithDetails(dir)
		}
		return nil, domain.ErrSnapshotIO.WithCause(err)
	}
	shards := make([]*Shard, shardCount)
	flushed := make(map[int]int)
	for i := range shards {
		path := filepath.Join(dir, shardFileName(i))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			shards[i] = NewShard()
			continue
		}
		sh, err := LoadShard(path)
		if err != nil {
			return nil, fmt.Errorf("loading shard %d: %w", i, err)
		}
		shards[i] = sh
		flushed[i] = sh.Len()
	}
	return &Store{
		shards:  shards,
		dir:     dir,
		flushed: flushed,
	}, nil
}

// findShard maps a key to its shard index. murmur3 is fast,
// well-distributed, and stable across processes and platforms, which
// keeps keys bound to the same snapshot file across restarts.
func (st *Store) findShard(key string) int {
	return int(murmur3.Sum32([]byte(key)) % uint32(len(st.shards)))
}

// Put inserts or overwrites the value for key. ttlSeconds nil means the
// entry never expires.
func (st *Store) Put(key string, value any, ttlSeconds *float64) {
	st.shards[st.findShard(key)].Put(key, domain.NewEntry(value, ttlSeconds))
}

// Get returns the value for key, or ErrKeyNotFound if absent.
//
// Get does not consult the TTL: an entry whose TTL has elapsed is still
// returned until the next cleanup pass evicts it. Callers needing
// strict expiry must run cleanup at a finer interval than their
// staleness tolerance.
func (st *Store) Get(key string) (any, error) {
	e, ok := st.shards[st.findShard(key)].Get(key)
	if !ok {
		return nil, domain.ErrKeyNotFound.WithDetails(key)
	}
	return e.Value, nil
}

// Delete removes key if present. Deleting an absent key is a no-op.
func (st *Store) Delete(key string) {
	st.shards[st.findShard(key)].Delete(key)
}

// FlushAll snapshots every shard whose size changed since its last
// flush, in index order. The first failure aborts the remaining shards
// in the pass; already-written snapshots stay on disk and the caller is
// expected to retry the whole pass on the next tick. The watermark is
// advanced before the write, so a shard whose snapshot failed is
// skipped on that retry until its entry count changes again; its
// previous on-disk snapshot remains valid in the meantime.
func (st *Store) FlushAll() error {
	for i, sh := range st.shards {
		n := sh.Len()
		st.mu.Lock()
		if st.flushed[i] == n {
			st.mu.Unlock()
			continue
		}
		st.flushed[i] = n
		st.mu.Unlock()
		if err := sh.Snapshot(filepath.Join(st.dir, shardFileName(i))); err != nil {
			return fmt.Errorf("flushing shard %d: %w", i, err)
		}
	}
	return nil
}

// CleanupAll evicts expired entries from every shard in index order and
// returns the total number of entries removed.
func (st *Store) CleanupAll() int {
	now := time.Now().UnixMilli()
	removed := 0
	for _, sh := range st.shards {
		removed += sh.Evict(now)
	}
	return removed
}

// Len returns the total entry count across all shards.
func (st *Store) Len() int {
	n := 0
	for _, sh := range st.shards {
		n += sh.Len()
	}
	return n
}

// ShardCount returns the fixed number of shards.
func (st *Store) ShardCount() int {
	return len(st.shards)
}

// ShardLen returns the entry count of shard i.
func (st *Store) ShardLen(i int) int {
	return st.shards[i].Len()
}

// Dir returns the snapshot directory.
func (st *Store) Dir() string {
	return st.dir
}
