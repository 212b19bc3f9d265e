package handlers

import (
	"context"
	"sync"

	"github.com/lineupiq/context-api/internal/models"
)

type mockContextService struct {
	result *models.PlayerContext
	calls  int
	last   struct {
		player, team, date string
	}
}

func (m *mockContextService) GetContext(_ context.Context, player, team, date string) *models.PlayerContext {
	m.calls++
	m.last.player, m.last.team, m.last.date = player, team, date
	if m.result != nil {
		return m.result
	}
	return &models.PlayerContext{Player: player, Team: team, Date: date, Summary: "base analysis only"}
}

type mockStore struct {
	history []models.GameRecord
	err     error
}

func (m *mockStore) Append(_ context.Context, _ []models.GameLogEntry) error { return nil }

func (m *mockStore) History(_ context.Context, _, _ string) ([]models.GameRecord, error) {
	return m.history, m.err
}

type mockQueue struct {
	mu       sync.Mutex
	entries  []models.GameLogEntry
	capacity int // 0 means unlimited
}

func (m *mockQueue) Enqueue(entry models.GameLogEntry) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.capacity > 0 && len(m.entries) >= m.capacity {
		return false
	}
	m.entries = append(m.entries, entry)
	return true
}

func (m *mockQueue) QueueDepth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
