package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	t.Run("ttl converted to milliseconds", func(t *testing.T) {
		ttl := 0.001
		e := NewEntry("hello", &ttl)

		assert.Equal(t, "hello", e.Value)
		assert.Equal(t, 1.0, e.TTL)
		assert.LessOrEqual(t, e.Timestamp, time.Now().UnixMilli())
	})

	t.Run("nil ttl means never expires", func(t *testing.T) {
		e := NewEntry(1, nil)
		assert.Equal(t, NoExpiry, e.TTL)
	})
}

func TestEntryExpired(t *testing.T) {
	now := time.Now().UnixMilli()

	t.Run("expired after ttl elapses", func(t *testing.T) {
		e := &Entry{Value: 1, Timestamp: now - 10, TTL: 5}
		assert.True(t, e.Expired(now))
	})

	t.Run("not expired before ttl elapses", func(t *testing.T) {
		e := &Entry{Value: 1, Timestamp: now, TTL: 5000}
		assert.False(t, e.Expired(now))
	})

	t.Run("sentinel ttl never expires", func(t *testing.T) {
		e := &Entry{Value: 1, Timestamp: 0, TTL: NoExpiry}
		assert.False(t, e.Expired(now))
	})

	t.Run("zero ttl never expires", func(t *testing.T) {
		e := &Entry{Value: 1, Timestamp: 0, TTL: 0}
		assert.False(t, e.Expired(now))
	})
}

func TestEntryJSONRoundTrip(t *testing.T) {
	ttl := 2.0
	e := NewEntry(map[string]any{"a": float64(1)}, &ttl)

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded Entry
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, e.Value, decoded.Value)
	assert.Equal(t, e.Timestamp, decoded.Timestamp)
	assert.Equal(t, 2000.0, decoded.TTL)
}
