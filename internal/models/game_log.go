package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GameRecord is one player-game observation in a chronological game log.
type GameRecord struct {
	Date   time.Time `json:"date"`
	Hits   int       `json:"hits"`
	AtBats int       `json:"at_bats"`
}

// Average returns hits/at-bats, 0 when the player had no at-bats.
func (g GameRecord) Average() float64 {
	if g.AtBats == 0 {
		return 0
	}
	return float64(g.Hits) / float64(g.AtBats)
}

// GameLogEntry binds a game record to the player it belongs to. This is the
// unit accepted by the ingest endpoint and flushed into the game-log store.
type GameLogEntry struct {
	Player string     `json:"player" validate:"required"`
	Team   string     `json:"team" validate:"required"`
	Game   GameRecord `json:"game"`
}

// UnmarshalJSON accepts both native and string-encoded stat fields. Feed
// exporters frequently quote every value; a field that fails to parse as a
// number defaults to 0 instead of rejecting the whole record.
func (g *GameRecord) UnmarshalJSON(data []byte) error {
	type alias GameRecord
	a := (*alias)(g)

	// Fast path: everything is natively typed.
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	var raw struct {
		Date   json.RawMessage `json:"date"`
		Hits   json.RawMessage `json:"hits"`
		AtBats json.RawMessage `json:"at_bats"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("game record: %w", err)
	}

	if len(raw.Date) > 0 {
		var ts time.Time
		if err := json.Unmarshal(raw.Date, &ts); err == nil {
			g.Date = ts
		} else {
			// Date-only form, e.g. "2025-06-14"
			s := strings.Trim(string(raw.Date), `"`)
			if d, err := time.Parse("2006-01-02", s); err == nil {
				g.Date = d
			}
		}
	}
	g.Hits = coerceInt(raw.Hits)
	g.AtBats = coerceInt(raw.AtBats)
	return nil
}

// coerceInt parses a JSON value that may be a number or a quoted number.
// Malformed values coerce to 0.
func coerceInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	s := strings.Trim(string(raw), `"`)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
