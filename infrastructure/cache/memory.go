// Package cache provides ports.CacheStore implementations: a
// process-local in-memory store for single-instance deployments and
// tests, and a Redis-backed store for shared deployments.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/quartetlab/quartet/internal/ports"
)

// entry is one cached value with an optional expiry.
type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process CacheStore with passive TTL expiry.
// Expired entries read as misses and are purged lazily on access; there
// is no background sweeper.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   func() time.Time
}

var _ ports.CacheStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		clock:   time.Now,
	}
}

// Get returns the value for key. An expired entry is reported absent
// and removed.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if e.expired(s.clock()) {
		s.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry since the read.
		if cur, ok := s.entries[key]; ok && cur.expired(s.clock()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}

	return e.value, true, nil
}

// Set stores value under key. A zero ttl stores without expiry.
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.clock().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Delete removes key. Removing an absent key is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Clear drops all entries.
func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, counting expired ones not
// yet purged.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
