package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lineupiq/context-api/internal/models"
)

type playerLog struct {
	player string
	team   string
	games  []models.GameRecord
}

// MemoryStore keeps game logs in process memory, keyed by (player, team).
// The default store when no database is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	logs map[string]*playerLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{logs: make(map[string]*playerLog)}
}

func logKey(player, team string) string {
	return strings.ToLower(player) + "|" + strings.ToLower(team)
}

func (s *MemoryStore) Append(ctx context.Context, entries []models.GameLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	touched := make(map[string]struct{})
	for _, e := range entries {
		key := logKey(e.Player, e.Team)
		pl, ok := s.logs[key]
		if !ok {
			pl = &playerLog{player: e.Player, team: e.Team}
			s.logs[key] = pl
		}
		pl.games = append(pl.games, e.Game)
		touched[key] = struct{}{}
	}
	for key := range touched {
		games := s.logs[key].games
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].Date.Before(games[j].Date)
		})
	}
	return nil
}

// History resolves the requested player against the stored roster for the
// team and returns that player's chronological log. No match yields an
// empty history, not an error.
func (s *MemoryStore) History(ctx context.Context, player, team string) ([]models.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*playerLog
	for _, pl := range s.logs {
		if team != "" && !strings.EqualFold(pl.team, team) {
			continue
		}
		candidates = append(candidates, pl)
	}
	// Map order is not stable; scan the roster in a fixed order.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].player < candidates[j].player
	})
	names := make([]string, len(candidates))
	for i, pl := range candidates {
		names[i] = pl.player
	}
	idx := resolveIndex(player, names)
	if idx < 0 {
		return nil, nil
	}
	games := make([]models.GameRecord, len(candidates[idx].games))
	copy(games, candidates[idx].games)
	return games, nil
}
