package logic

import (
	"context"

	"github.com/lineupiq/context-api/internal/models"
)

// PlayerQuery identifies one player on one slate date.
type PlayerQuery struct {
	Player string
	Team   string
	Date   string
}

// FeedSource is one external per-player signal feed. Lookup returns
// (nil, nil) when the feed has no record for the player; that is not an
// error. Implementations resolve names against their own roster.
type FeedSource interface {
	Name() string
	Lookup(ctx context.Context, q PlayerQuery) (models.FeedSignal, error)
}

// HistoryProvider supplies a player's chronological game log for pattern
// analysis.
type HistoryProvider interface {
	History(ctx context.Context, player, team string) ([]models.GameRecord, error)
}

// ContextCache stores fully built player contexts. Entries are replaced
// whole; implementations must be safe under concurrent aggregation calls.
type ContextCache interface {
	Get(ctx context.Context, key string) (*models.PlayerContext, bool)
	Set(ctx context.Context, key string, pc *models.PlayerContext)
}

// ContextService fuses all per-feed signals into one player context.
type ContextService interface {
	GetContext(ctx context.Context, player, team, date string) *models.PlayerContext
}
