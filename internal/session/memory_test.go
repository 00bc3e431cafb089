package session

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := &MemoryStore{
		entries: make(map[string]entry),
		now:     func() time.Time { return now },
		stop:    make(chan struct{}),
	}
	t.Cleanup(s.Close)
	return s, &now
}

func TestMemoryStorePutGet(t *testing.T) {
	s, _ := newTestStore(t)
	s.Put("k", []byte("v"), time.Minute)
	got, ok := s.Get("k")
	if !ok || string(got) != "v" {
		t.Fatalf("Get = %q, %v; want v, true", got, ok)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s, now := newTestStore(t)
	s.Put("k", []byte("v"), time.Minute)
	*now = now.Add(61 * time.Second)
	if _, ok := s.Get("k"); ok {
		t.Fatal("entry should have expired")
	}
	// Expired entry is gone for good, even if the clock rolled back.
	*now = now.Add(-time.Hour)
	if _, ok := s.Get("k"); ok {
		t.Fatal("expired entry resurfaced")
	}
}

func TestMemoryStorePutRefreshesDeadline(t *testing.T) {
	s, now := newTestStore(t)
	s.Put("k", []byte("v1"), time.Minute)
	*now = now.Add(50 * time.Second)
	s.Put("k", []byte("v2"), time.Minute)
	*now = now.Add(50 * time.Second)
	got, ok := s.Get("k")
	if !ok || string(got) != "v2" {
		t.Fatalf("Get = %q, %v; want v2, true", got, ok)
	}
}

func TestMemoryStoreCopiesValue(t *testing.T) {
	s, _ := newTestStore(t)
	buf := []byte("abc")
	s.Put("k", buf, time.Minute)
	buf[0] = 'x'
	got, _ := s.Get("k")
	if string(got) != "abc" {
		t.Fatalf("stored value aliased caller buffer: %q", got)
	}
}

func TestSessionsAwaitConsumeOnce(t *testing.T) {
	s, _ := newTestStore(t)
	sess := NewSessions(s, 0)
	sess.Await(1, 9)
	if !sess.ConsumeAwait(1, 9) {
		t.Fatal("first consume should succeed")
	}
	if sess.ConsumeAwait(1, 9) {
		t.Fatal("second consume should fail")
	}
}

func TestSessionsKeysScopedPerUser(t *testing.T) {
	s, _ := newTestStore(t)
	sess := NewSessions(s, 0)
	sess.Await(1, 9)
	if sess.ConsumeAwait(1, 10) {
		t.Fatal("flag leaked to another user in the same chat")
	}
	if sess.ConsumeAwait(2, 9) {
		t.Fatal("flag leaked to another chat")
	}
	if !sess.ConsumeAwait(1, 9) {
		t.Fatal("flag missing for its own pair")
	}
}

func TestSessionsRemainsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	sess := NewSessions(s, 0)
	if _, ok := sess.GetRemains(1, 9); ok {
		t.Fatal("remains present before put")
	}
	sess.PutRemains(1, 9, []byte(`["a"]`))
	got, ok := sess.GetRemains(1, 9)
	if !ok || string(got) != `["a"]` {
		t.Fatalf("GetRemains = %q, %v", got, ok)
	}
	sess.ClearRemains(1, 9)
	if _, ok := sess.GetRemains(1, 9); ok {
		t.Fatal("remains present after clear")
	}
}

func TestSessionsDefaultTTL(t *testing.T) {
	s, _ := newTestStore(t)
	if got := NewSessions(s, 0).TTL(); got != DefaultTTL {
		t.Fatalf("TTL = %v, want %v", got, DefaultTTL)
	}
	if got := NewSessions(s, time.Hour).TTL(); got != time.Hour {
		t.Fatalf("TTL = %v, want 1h", got)
	}
}
