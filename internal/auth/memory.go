package auth

import (
	"context"
	"sync"
	"time"
)

// MemorySessionStore implements SessionStore in process memory. It backs
// tests and redis-less development runs with the same overwrite and expiry
// semantics as the Redis store.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[int64]sessionEntry
	now     func() time.Time
}

type sessionEntry struct {
	token     string
	expiresAt time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an empty in-memory whitelist.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[int64]sessionEntry),
		now:     time.Now,
	}
}

// SetClock overrides the time source. Only intended for test use.
func (s *MemorySessionStore) SetClock(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn != nil {
		s.now = fn
	}
}

func (s *MemorySessionStore) Put(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = sessionEntry{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, userID int64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[userID]
	if !ok {
		return "", false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, userID)
		return "", false, nil
	}
	return entry.token, true, nil
}

func (s *MemorySessionStore) IsLive(ctx context.Context, userID int64, token string) bool {
	val, ok, err := s.Get(ctx, userID)
	if err != nil || !ok {
		return false
	}
	return val == token
}

func (s *MemorySessionStore) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
