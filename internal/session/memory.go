package session

import (
	"sync"
	"time"
)

type entry struct {
	value    []byte
	deadline time.Time
}

// MemoryStore is an in-process Store. Expired entries are dropped lazily on
// read and swept periodically so abandoned sessions do not accumulate.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore returns an empty store and starts its background sweep.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.sweep(time.Minute)
	return s
}

func (s *MemoryStore) Put(key string, value []byte, ttl time.Duration) {
	v := make([]byte, len(value))
	copy(v, value)
	s.mu.Lock()
	s.entries[key] = entry{value: v, deadline: s.now().Add(ttl)}
	s.mu.Unlock()
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.now().After(e.deadline) {
		s.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Close stops the background sweep.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-t.C:
			now := s.now()
			s.mu.Lock()
			for k, e := range s.entries {
				if now.After(e.deadline) {
					delete(s.entries, k)
				}
			}
			s.mu.Unlock()
		}
	}
}
