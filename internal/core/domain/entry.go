package domain

import "time"

// NoExpiry is the TTL sentinel for entries that never expire.
const NoExpiry float64 = -1

// Entry is the stored unit of data: an arbitrary JSON-serializable value
// plus its creation time and optional TTL.
//
// The JSON field names are the snapshot wire format and must not change:
// snapshot files written by one process are read back by the next.
type Entry struct {
	// Value is an arbitrary structured value (anything json.Marshal accepts).
	Value any `json:"value"`

	// Timestamp is the creation time in milliseconds since the epoch.
	// Set exactly once at construction and never mutated.
	Timestamp int64 `json:"timestamp"`

	// TTL is the time-to-live in milliseconds. Non-positive means the
	// entry never expires.
	TTL float64 `json:"ttl"`
}

// NewEntry creates an Entry stamped with the current time.
// ttlSeconds is converted to milliseconds; nil means never expires.
func NewEntry(value any, ttlSeconds *float64) *Entry {
	ttl := NoExpiry
	if ttlSeconds != nil {
		ttl = *ttlSeconds * 1000
	}
	return &Entry{
		Value:     value,
		Timestamp: time.Now().UnixMilli(),
		TTL:       ttl,
	}
}

// Expired reports whether the entry's TTL has elapsed at nowMillis.
func (e *Entry) Expired(nowMillis int64) bool {
	return e.TTL > 0 && float64(nowMillis-e.Timestamp) > e.TTL
}
