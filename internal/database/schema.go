package database

import (
	"context"
	"fmt"
)

// schemaStatements are applied in order on startup. Statements are
// idempotent so repeated runs against an existing database are safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		sport_key TEXT NOT NULL,
		sport_title TEXT NOT NULL DEFAULT '',
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		commence_time TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ev_bets (
		id UUID PRIMARY KEY,
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		bookmaker TEXT NOT NULL,
		market TEXT NOT NULL,
		player TEXT NOT NULL,
		outcome TEXT NOT NULL,
		betting_line DOUBLE PRECISION NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		ev_percent DOUBLE PRECISION NOT NULL,
		true_prob DOUBLE PRECISION NOT NULL,
		sharp_mean DOUBLE PRECISION NOT NULL,
		mean_diff DOUBLE PRECISION NOT NULL,
		std_dev DOUBLE PRECISION,
		implied_means DOUBLE PRECISION[],
		sample_size INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ev_bets_active ON ev_bets (is_active)`,
	`CREATE INDEX IF NOT EXISTS idx_ev_bets_ev_percent ON ev_bets (ev_percent DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_ev_bets_game_id ON ev_bets (game_id)`,
	`CREATE INDEX IF NOT EXISTS idx_games_commence_time ON games (commence_time)`,
}

// InitSchema creates the tables and indexes required by the scanner.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
