package service

import (
	"sync"
	"time"
)

// RevocationSet records logged-out tokens for the lifetime of the process.
// Each entry is kept until the token could no longer be valid anyway, and
// stale entries are dropped on insert.
type RevocationSet struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
	ttl    time.Duration
	now    func() time.Time
}

// NewRevocationSet creates a set that retains entries for ttl, which should
// be at least the session token lifetime.
func NewRevocationSet(ttl time.Duration) *RevocationSet {
	return &RevocationSet{
		tokens: make(map[string]time.Time),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Revoke adds token to the set. Revoking the same token twice is a no-op
// apart from extending its retention.
func (s *RevocationSet) Revoke(token string) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for t, until := range s.tokens {
		if now.After(until) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = now.Add(s.ttl)
}

// Contains reports whether token has been revoked.
func (s *RevocationSet) Contains(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.tokens[token]
	return ok
}

// Len returns the number of retained entries.
func (s *RevocationSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
