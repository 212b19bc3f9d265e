package logic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lineupiq/context-api/internal/models"
)

// MockFeed implements FeedSource with a canned signal or error and counts
// how often it was dispatched.
type MockFeed struct {
	FeedName string
	Signal   models.FeedSignal
	Err      error
	Delay    time.Duration
	Panic    bool
	calls    atomic.Int64
}

func (m *MockFeed) Name() string { return m.FeedName }

func (m *MockFeed) Lookup(ctx context.Context, q PlayerQuery) (models.FeedSignal, error) {
	m.calls.Add(1)
	if m.Panic {
		panic("feed exploded")
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.Signal, m.Err
}

func (m *MockFeed) Calls() int64 { return m.calls.Load() }

// MockHistory implements HistoryProvider.
type MockHistory struct {
	Records []models.GameRecord
	Err     error
}

func (m *MockHistory) History(ctx context.Context, player, team string) ([]models.GameRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

// MapCache is a minimal ContextCache for aggregator tests.
type MapCache struct {
	mu      sync.Mutex
	entries map[string]*models.PlayerContext
}

func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[string]*models.PlayerContext)}
}

func (c *MapCache) Get(ctx context.Context, key string) (*models.PlayerContext, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pc, ok := c.entries[key]
	return pc, ok
}

func (c *MapCache) Set(ctx context.Context, key string, pc *models.PlayerContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = pc
}

var errFeedDown = errors.New("feed unavailable")
