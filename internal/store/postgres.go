package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/lineupiq/context-api/internal/models"
)

// PgPool is the slice of pgxpool.Pool the store needs; narrowed for tests.
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// PostgresStore persists game logs in a game_logs table. Used when
// POSTGRES_URL is configured, so histories survive restarts and are shared
// across instances.
type PostgresStore struct {
	pool   PgPool
	logger *zap.SugaredLogger
}

func NewPostgresStore(pool PgPool, logger *zap.Logger) *PostgresStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresStore{pool: pool, logger: logger.Sugar()}
}

func (s *PostgresStore) Append(ctx context.Context, entries []models.GameLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, e := range entries {
		b.Queue(
			`INSERT INTO game_logs (player, team, game_date, hits, at_bats)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (player, team, game_date) DO UPDATE
			 SET hits = EXCLUDED.hits, at_bats = EXCLUDED.at_bats`,
			e.Player, e.Team, e.Game.Date, e.Game.Hits, e.Game.AtBats,
		)
	}
	br := s.pool.SendBatch(ctx, b)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert game log: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) History(ctx context.Context, player, team string) ([]models.GameRecord, error) {
	names, err := s.rosterNames(ctx, team)
	if err != nil {
		return nil, err
	}
	idx := resolveIndex(player, names)
	if idx < 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT game_date, hits, at_bats
		 FROM game_logs
		 WHERE player = $1 AND lower(team) = lower($2)
		 ORDER BY game_date ASC`,
		names[idx], team)
	if err != nil {
		return nil, fmt.Errorf("query game logs: %w", err)
	}
	defer rows.Close()

	var games []models.GameRecord
	for rows.Next() {
		var g models.GameRecord
		if err := rows.Scan(&g.Date, &g.Hits, &g.AtBats); err != nil {
			s.logger.Warnw("skipping unreadable game log row", "player", names[idx], "error", err)
			continue
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (s *PostgresStore) rosterNames(ctx context.Context, team string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT player
		 FROM game_logs
		 WHERE $1 = '' OR lower(team) = lower($1)
		 ORDER BY player ASC`,
		team)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			continue
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
