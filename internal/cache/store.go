// Package cache provides the namespaced key-value stores used by the lead
// intake pipeline: a durable store that survives restarts (SQLite-backed)
// and a session store that lives only as long as the process (in-memory).
// Both scopes share the same contract and the same failure posture: storage
// trouble degrades to cache misses, it never propagates as an error the
// pipeline has to handle.
//
// Every store verifies the underlying storage is writable at construction
// (a write/read/delete of a throwaway key). A store that fails the probe is
// permanently disabled: Set becomes a silent no-op and Get always misses,
// so the rest of the system keeps functioning on the remote path alone.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-leads-backend/internal/repo"
)

// json is the codec used for cache payloads.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store is the contract shared by the durable and session caches.
//
// Get decodes the live value under key into out and reports a hit; absent,
// unparsable, and expired entries are all misses (expired entries are
// deleted as a side effect of the read). Set accepts an optional TTL;
// ttl <= 0 stores without expiry. All operations are best-effort: a
// disabled or failing store misses rather than errors.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool
	Get(ctx context.Context, key string, out any) bool
	Remove(ctx context.Context, key string)
	Clear(ctx context.Context)
	Available() bool
}

// DurableStore is the restart-surviving cache scope, backed by the
// cache_entries table. One instance serves one namespace.
type DurableStore struct {
	db        *gorm.DB
	namespace string
	disabled  bool

	// Now is a clock seam for tests; defaults to time.Now.
	Now func() time.Time
}

// NewDurableStore constructs a namespaced durable store and runs the
// availability probe. A failed probe disables the store for the process
// lifetime; the failure is logged once here and never surfaced again.
func NewDurableStore(db *gorm.DB, namespace string) *DurableStore {
	s := &DurableStore{db: db, namespace: namespace, Now: time.Now}
	if !s.probe() {
		s.disabled = true
		log.Warn().Str("namespace", namespace).Msg("durable cache unavailable, operating without local persistence")
	}
	return s
}

// probe verifies the backing table is writable via a throwaway key.
func (s *DurableStore) probe() bool {
	if s.db == nil {
		return false
	}
	ctx := context.Background()
	key := "probe-" + uuid.NewString()
	now := s.Now().UTC()
	if err := repo.UpsertEntry(ctx, s.db, s.namespace, key, `"ok"`, now, nil); err != nil {
		return false
	}
	if _, err := repo.GetEntry(ctx, s.db, s.namespace, key, now); err != nil {
		return false
	}
	return repo.DeleteEntry(ctx, s.db, s.namespace, key) == nil
}

// Available reports whether the construction-time probe succeeded.
func (s *DurableStore) Available() bool { return !s.disabled }

// Set serializes value under key, optionally expiring after ttl.
// It reports whether the write was persisted.
func (s *DurableStore) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if s.disabled {
		return false
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	now := s.Now().UTC()
	var expiresAt *time.Time
	if ttl > 0 {
		t := now.Add(ttl)
		expiresAt = &t
	}
	if err := repo.UpsertEntry(ctx, s.db, s.namespace, key, string(raw), now, expiresAt); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("durable cache write failed")
		return false
	}
	return true
}

// Get decodes the live value under key into out. Misses on absent,
// expired, or unparsable entries; expired rows are deleted on read.
func (s *DurableStore) Get(ctx context.Context, key string, out any) bool {
	if s.disabled {
		return false
	}
	e, err := repo.GetEntry(ctx, s.db, s.namespace, key, s.Now().UTC())
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(e.Value), out); err != nil {
		// Unparsable payloads are treated as misses and dropped.
		_ = repo.DeleteEntry(ctx, s.db, s.namespace, key)
		return false
	}
	return true
}

// Remove deletes the entry under key.
func (s *DurableStore) Remove(ctx context.Context, key string) {
	if s.disabled {
		return
	}
	_ = repo.DeleteEntry(ctx, s.db, s.namespace, key)
}

// Clear removes every entry in this store's namespace.
func (s *DurableStore) Clear(ctx context.Context) {
	if s.disabled {
		return
	}
	_ = repo.DeleteNamespace(ctx, s.db, s.namespace)
}
