// Package cache provides a small TTL memoization facade for pipeline
// entry points. Eviction is time-based only; a fresh run is just a run
// after the TTL lapses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Memo memoizes computed values under string keys for a fixed TTL.
// Safe for concurrent use.
type Memo struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// New returns a memo with the given TTL.
func New(ttl time.Duration) *Memo {
	return &Memo{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key derives a stable cache key from the given parts.
func Key(parts ...any) string {
	b, err := json.Marshal(parts)
	if err != nil {
		b = []byte(fmt.Sprint(parts...))
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Do returns the cached value for key when it is still fresh, otherwise
// calls compute and stores the result. Failed computations are not
// cached.
func (m *Memo) Do(key string, compute func() (any, error)) (any, error) {
	m.mu.Lock()
	if e, ok := m.entries[key]; ok && m.now().Sub(e.storedAt) < m.ttl {
		m.mu.Unlock()
		return e.value, nil
	}
	m.mu.Unlock()

	value, err := compute()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = entry{value: value, storedAt: m.now()}
	m.mu.Unlock()
	return value, nil
}
