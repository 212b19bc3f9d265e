// Package cache provides the context cache behind the signal aggregator:
// an in-process TTL map by default, with a redis-backed variant for
// deployments that share contexts across instances.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/lineupiq/context-api/internal/models"
)

// DefaultTTL is how long a fused context stays valid.
const DefaultTTL = 5 * time.Minute

type memoryEntry struct {
	pc       *models.PlayerContext
	storedAt time.Time
}

// Memory is a mutex-guarded TTL map. Entries are replaced whole and evicted
// lazily on the next lookup past their TTL; there is no background sweeper.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an in-process context cache. A non-positive ttl falls
// back to DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) (*models.PlayerContext, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.storedAt) >= m.ttl {
		delete(m.entries, key)
		return nil, false
	}
	return e.pc, true
}

func (m *Memory) Set(ctx context.Context, key string, pc *models.PlayerContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{pc: pc, storedAt: m.now()}
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
