// Package repository provides data access for games and scored bets.
package repository

import (
	"context"
	"time"

	"github.com/yourusername/prop-edge/internal/models"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	Upsert(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	GetUpcoming(ctx context.Context, now time.Time) ([]*models.Game, error)
}

// BetFilter narrows ActiveBets queries. Zero values mean "no constraint".
type BetFilter struct {
	Bookmaker string
	SportKey  string
	Market    string
	Player    string
	MinEV     *float64
	MaxEV     *float64
	Limit     int
}

// EVBetRepository defines the interface for scored bet data access
type EVBetRepository interface {
	InsertBatch(ctx context.Context, bets []*models.EVBet) (int, error)
	DeactivateCommenced(ctx context.Context, now time.Time) (int64, error)
	DeactivateOlderThan(ctx context.Context, age time.Duration, now time.Time) (int64, error)
	ActiveBets(ctx context.Context, filter BetFilter) ([]*models.ActiveEVBet, error)
	Statistics(ctx context.Context) (*models.BetStatistics, error)
}
