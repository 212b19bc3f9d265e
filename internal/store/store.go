// Package store persists per-player game logs and serves them back as the
// history provider behind pattern analysis. Reads resolve the requested name
// against the stored roster, so "N. Castellanos" finds Nick Castellanos.
package store

import (
	"context"

	"github.com/lineupiq/context-api/internal/models"
)

// GameLogStore accepts ingested game-log entries and serves chronological
// histories.
type GameLogStore interface {
	Append(ctx context.Context, entries []models.GameLogEntry) error
	History(ctx context.Context, player, team string) ([]models.GameRecord, error)
}
