package session

import (
	"fmt"
	"time"
)

// DefaultTTL is how long an await flag or a queued reading remainder lives.
const DefaultTTL = 21600 * time.Second

const awaitSentinel = "1"

// Sessions wraps a Store with the bot's key scheme. Both keys are scoped to
// the (chat, user) pair so readings in group chats stay per-person.
type Sessions struct {
	store Store
	ttl   time.Duration
}

// NewSessions builds the facade. A non-positive ttl falls back to DefaultTTL.
func NewSessions(store Store, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Sessions{store: store, ttl: ttl}
}

// TTL reports the configured entry lifetime.
func (s *Sessions) TTL() time.Duration { return s.ttl }

func awaitKey(chat, user int64) string {
	return fmt.Sprintf("%d_%d_waitforask", chat, user)
}

func remainsKey(chat, user int64) string {
	return fmt.Sprintf("%d_%d_remains", chat, user)
}

// Await marks the pair as waiting for a question.
func (s *Sessions) Await(chat, user int64) {
	s.store.Put(awaitKey(chat, user), []byte(awaitSentinel), s.ttl)
}

// ConsumeAwait atomically reads and clears the waiting flag. It reports
// whether the flag was set.
func (s *Sessions) ConsumeAwait(chat, user int64) bool {
	key := awaitKey(chat, user)
	_, ok := s.store.Get(key)
	if ok {
		s.store.Remove(key)
	}
	return ok
}

// ClearAwait drops the waiting flag without reporting.
func (s *Sessions) ClearAwait(chat, user int64) {
	s.store.Remove(awaitKey(chat, user))
}

// PutRemains stores the serialized remainder of an active reading, replacing
// any previous one and refreshing its deadline.
func (s *Sessions) PutRemains(chat, user int64, payload []byte) {
	s.store.Put(remainsKey(chat, user), payload, s.ttl)
}

// GetRemains returns the serialized remainder if one is pending.
func (s *Sessions) GetRemains(chat, user int64) ([]byte, bool) {
	return s.store.Get(remainsKey(chat, user))
}

// ClearRemains drops the pending remainder.
func (s *Sessions) ClearRemains(chat, user int64) {
	s.store.Remove(remainsKey(chat, user))
}
