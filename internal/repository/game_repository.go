package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/models"
)

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Upsert inserts a game or refreshes its details if the provider event
// ID is already known. Commence times move when fixtures are rescheduled,
// so the update path is the common one on repeat cycles.
func (r *PostgresGameRepository) Upsert(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, sport_key, sport_title, home_team, away_team, commence_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			sport_key = EXCLUDED.sport_key,
			sport_title = EXCLUDED.sport_title,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			commence_time = EXCLUDED.commence_time,
			updated_at = NOW()
	`

	_, err := r.db.Pool().Exec(ctx, query,
		game.ID, game.SportKey, game.SportTitle, game.HomeTeam, game.AwayTeam, game.CommenceTime,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by its provider event ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id string) (*models.Game, error) {
	query := `
		SELECT id, sport_key, sport_title, home_team, away_team, commence_time, created_at, updated_at
		FROM games WHERE id = $1
	`

	game := &models.Game{}
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.SportKey, &game.SportTitle, &game.HomeTeam, &game.AwayTeam,
		&game.CommenceTime, &game.CreatedAt, &game.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetUpcoming retrieves games that have not yet commenced, soonest first
func (r *PostgresGameRepository) GetUpcoming(ctx context.Context, now time.Time) ([]*models.Game, error) {
	query := `
		SELECT id, sport_key, sport_title, home_team, away_team, commence_time, created_at, updated_at
		FROM games
		WHERE commence_time > $1
		ORDER BY commence_time ASC
	`

	rows, err := r.db.Pool().Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game := &models.Game{}
		err := rows.Scan(
			&game.ID, &game.SportKey, &game.SportTitle, &game.HomeTeam, &game.AwayTeam,
			&game.CommenceTime, &game.CreatedAt, &game.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}
