// Package cache holds the single time-boxed snapshot that guards the scrape
// pipeline. One slot is enough: every aggregation pass rebuilds the full set.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/andover-chess-club/fixtures-service/internal/domain"
)

// Store is the cache contract the fixtures service depends on.
type Store interface {
	Get() (domain.FixturesSnapshot, bool)
	Set(snapshot domain.FixturesSnapshot)
	Clear()
}

// Memory is a single-slot TTL cache. The clock is injected so tests can
// control expiry without sleeping.
type Memory struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	ttl      time.Duration
	snapshot domain.FixturesSnapshot
	storedAt time.Time
	filled   bool
}

// NewMemory constructs a cache with the given TTL. A nil clock uses real time.
func NewMemory(ttl time.Duration, clock clockwork.Clock) *Memory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Memory{
		clock: clock,
		ttl:   ttl,
	}
}

// Get returns the cached snapshot when one is present and not yet expired.
func (m *Memory) Get() (domain.FixturesSnapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.filled {
		return domain.FixturesSnapshot{}, false
	}
	if m.clock.Since(m.storedAt) >= m.ttl {
		return domain.FixturesSnapshot{}, false
	}
	return m.snapshot, true
}

// Set replaces the slot with a fresh snapshot. Concurrent refreshes may race
// here; the later write wins, which is fine because snapshots are idempotent.
func (m *Memory) Set(snapshot domain.FixturesSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = snapshot
	m.storedAt = m.clock.Now()
	m.filled = true
}

// Clear empties the slot so the next read triggers a fresh aggregation.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshot = domain.FixturesSnapshot{}
	m.filled = false
}
