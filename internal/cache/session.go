// Package cache provides the namespaced key-value stores used by the lead
// intake pipeline. This file implements the session-scoped store: a
// process-local map with per-entry expiry, dropped entirely when the
// process ends. It mirrors the durable store's contract so components can
// accept either scope behind the Store interface.
package cache

import (
	"context"
	"sync"
	"time"
)

// sessionEntry holds one serialized value and its optional expiry.
type sessionEntry struct {
	raw       []byte
	expiresAt time.Time // zero means no expiry
}

// SessionStore is the session-scoped cache: identical contract to
// DurableStore, different lifetime. Safe for concurrent use.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]sessionEntry

	// Now is a clock seam for tests; defaults to time.Now.
	Now func() time.Time
}

// NewSessionStore constructs an empty session store. Memory is always
// writable, so the availability probe is trivially satisfied.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]sessionEntry),
		Now:     time.Now,
	}
}

// Available always reports true for the in-memory scope.
func (s *SessionStore) Available() bool { return true }

// Set serializes value under key, optionally expiring after ttl.
func (s *SessionStore) Set(_ context.Context, key string, value any, ttl time.Duration) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	e := sessionEntry{raw: raw}
	if ttl > 0 {
		e.expiresAt = s.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return true
}

// Get decodes the live value under key into out. Expired entries are
// evicted on read and reported as misses.
func (s *SessionStore) Get(_ context.Context, key string, out any) bool {
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok && !e.expiresAt.IsZero() && !s.Now().Before(e.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(e.raw, out) == nil
}

// Remove deletes the entry under key.
func (s *SessionStore) Remove(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Clear drops every entry, ending the logical session.
func (s *SessionStore) Clear(_ context.Context) {
	s.mu.Lock()
	s.entries = make(map[string]sessionEntry)
	s.mu.Unlock()
}
