package kv

import (
	"fmt"
	"testing"
)

func benchmarkPutGetDelete(b *testing.B, shards int) {
	st, err := New(shards, b.TempDir())
	if err != nil {
		b.Fatal(err)
	}
	key := "hello"
	b.ResetTimer()
	for b.Loop() {
		st.Put(key, 1, nil)
		st.Get(key) //nolint:errcheck
		st.Delete(key)
	}
}

func BenchmarkPutGetDelete1Shard(b *testing.B)    { benchmarkPutGetDelete(b, 1) }
func BenchmarkPutGetDelete10Shards(b *testing.B)  { benchmarkPutGetDelete(b, 10) }
func BenchmarkPutGetDelete100Shards(b *testing.B) { benchmarkPutGetDelete(b, 100) }

func BenchmarkFlushAll(b *testing.B) {
	st, err := New(10, b.TempDir())
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		st.Put(fmt.Sprintf("key-%d", i), i, nil)
	}
	b.ResetTimer()
	for b.Loop() {
		// Toggle one key so the owning shard's size changes and the
		// pass writes at least one snapshot instead of skipping.
		st.Put("bench-toggle", 1, nil)
		if err := st.FlushAll(); err != nil {
			b.Fatal(err)
		}
		st.Delete("bench-toggle")
	}
}
