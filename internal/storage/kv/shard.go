package kv

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/quiverdb/quiver/internal/core/domain"
)

// Shard is an independently locked partition of the key space.
//
// All shard state is guarded by a single reader/writer lock: reads
// (Get, Len, Snapshot) take shared access, writes (Put, Delete, Evict)
// take exclusive access. No operation holds the lock across another
// shard's I/O.
type Shard struct {
	mu   sync.RWMutex
	data map[string]*domain.Entry
}

// NewShard creates an empty shard.
func NewShard() *Shard {
	return &Shard{data: make(map[string]*domain.Entry)}
}

// NewShardWithData creates a shard over an existing mapping.
// The shard takes ownership of the map.
func NewShardWithData(data map[string]*domain.Entry) *Shard {
	if data == nil {
		data = make(map[string]*domain.Entry)
	}
	return &Shard{data: data}
}

// Get returns the entry for key, if present. The TTL is not consulted
// here; expiry is enforced by Evict only.
func (s *Shard) Get(key string) (*domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	return e, ok
}

// Put inserts or overwrites the entry for key.
func (s *Shard) Put(key string, e *domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = e
}

// Delete removes key if present. Absence is not an error.
func (s *Shard) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Len returns the current entry count. Used only for flush
// change-detection by the owning Store.
func (s *Shard) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes every entry whose TTL has elapsed at nowMillis and
// returns the number of entries removed.
func (s *Shard) Evict(nowMillis int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.data) == 0 {
		return 0
	}
	removed := 0
	for key, e := range s.data {
		if e.Expired(nowMillis) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Snapshot serializes the shard's mapping to path as
//
//	<json>\n<checksum>
//
// where the checksum is the md5 digest of the JSON bytes, printed as
// decimal byte values concatenated with no separator. An empty shard is
// never written.
func (s *Shard) Snapshot(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.data) == 0 {
		return nil
	}
	payload, err := json.Marshal(s.data)
	if err != nil {
		return domain.ErrSnapshotEncoding.WithCause(err)
	}
	content := make([]byte, 0, len(payload)+1+md5.Size*3)
	content = append(content, payload...)
	content = append(content, '\n')
	content = append(content, checksum(payload)...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return domain.ErrSnapshotIO.WithCause(err)
	}
	return nil
}

// LoadShard reads a snapshot file, verifies its checksum, and returns a
// populated shard. Callers decide how to treat a missing file; any read
// failure here surfaces as a snapshot I/O error.
func LoadShard(path string) (*Shard, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.ErrSnapshotIO.WithCause(err)
	}
	idx := bytes.LastIndexByte(raw, '\n')
	if idx < 0 {
		return nil, domain.ErrSnapshotIntegrity.WithDetails("missing checksum line")
	}
	payload, stored := raw[:idx], string(raw[idx+1:])
	if sum := checksum(payload); sum != stored {
		return nil, domain.ErrSnapshotIntegrity.WithDetails(
			"computed " + sum + ", stored " + stored)
	}
	var data map[string]*domain.Entry
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, domain.ErrSnapshotEncoding.WithCause(err)
	}
	return NewShardWithData(data), nil
}

// checksum returns the md5 digest of data with each byte printed as its
// decimal value, concatenated without separators.
func checksum(data []byte) string {
	sum := md5.Sum(data)
	var b strings.Builder
	b.Grow(md5.Size * 3)
	for _, c := range sum {
		b.WriteString(strconv.Itoa(int(c)))
	}
	return b.String()
}
