// Package session holds short-lived per-conversation state: the await-question
// flag set by the "ask" action and the queued remainder of an active reading.
// Entries expire on their own; losing one only means the user starts over.
package session

import "time"

// Store is an ephemeral key-value store with per-entry TTL.
type Store interface {
	// Put stores value under key, replacing any existing entry and its deadline.
	Put(key string, value []byte, ttl time.Duration)
	// Get returns the value if present and not expired.
	Get(key string) ([]byte, bool)
	// Remove deletes the entry if present.
	Remove(key string)
}
