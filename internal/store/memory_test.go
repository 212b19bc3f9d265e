package store

import (
	"context"
	"testing"
	"time"

	"github.com/lineupiq/context-api/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryStoreAppendAndHistory(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	// Out of order on purpose; History must come back chronological.
	entries := []models.GameLogEntry{
		{Player: "Nick Castellanos", Team: "PHI", Game: models.GameRecord{Date: day(3), Hits: 2, AtBats: 4}},
		{Player: "Nick Castellanos", Team: "PHI", Game: models.GameRecord{Date: day(1), Hits: 0, AtBats: 4}},
		{Player: "Nick Castellanos", Team: "PHI", Game: models.GameRecord{Date: day(2), Hits: 1, AtBats: 3}},
		{Player: "Trea Turner", Team: "PHI", Game: models.GameRecord{Date: day(1), Hits: 3, AtBats: 5}},
	}
	if err := s.Append(ctx, entries); err != nil {
		t.Fatalf("Append: %v", err)
	}

	games, err := s.History(ctx, "Nick Castellanos", "PHI")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("games = %d, want 3", len(games))
	}
	for i := 1; i < len(games); i++ {
		if games[i].Date.Before(games[i-1].Date) {
			t.Fatal("history not chronological")
		}
	}
}

func TestMemoryStoreHistoryResolvesNames(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	err := s.Append(ctx, []models.GameLogEntry{
		{Player: "Nick Castellanos", Team: "PHI", Game: models.GameRecord{Date: day(1), Hits: 1, AtBats: 4}},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	games, err := s.History(ctx, "N. Castellanos", "PHI")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("initial-form lookup returned %d games, want 1", len(games))
	}

	// Wrong team: no match, no error.
	games, err = s.History(ctx, "Nick Castellanos", "NYY")
	if err != nil || len(games) != 0 {
		t.Fatalf("wrong team: games=%d err=%v, want empty and nil", len(games), err)
	}

	// Unknown player: no match, no error.
	games, err = s.History(ctx, "Fake Player", "PHI")
	if err != nil || len(games) != 0 {
		t.Fatalf("unknown player: games=%d err=%v, want empty and nil", len(games), err)
	}
}

func TestMemoryStoreCopiesOnRead(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Append(ctx, []models.GameLogEntry{
		{Player: "Trea Turner", Team: "PHI", Game: models.GameRecord{Date: day(1), Hits: 2, AtBats: 5}},
	})

	games, _ := s.History(ctx, "Trea Turner", "PHI")
	games[0].Hits = 99

	again, _ := s.History(ctx, "Trea Turner", "PHI")
	if again[0].Hits != 2 {
		t.Fatal("History returned a slice aliasing internal state")
	}
}
