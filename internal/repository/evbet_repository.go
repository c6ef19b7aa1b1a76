package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/database"
	"github.com/yourusername/prop-edge/internal/models"
)

const activeBetColumns = `
	b.id, b.game_id, b.bookmaker, b.market, b.player, b.outcome,
	b.betting_line, b.price, b.ev_percent, b.true_prob, b.sharp_mean,
	b.mean_diff, b.std_dev, b.implied_means, b.sample_size, b.is_active,
	b.created_at, g.sport_title, g.home_team, g.away_team, g.commence_time`

// PostgresEVBetRepository implements EVBetRepository for PostgreSQL
type PostgresEVBetRepository struct {
	db     *database.DB
	logger *logrus.Entry
}

// NewPostgresEVBetRepository creates a new EV bet repository
func NewPostgresEVBetRepository(db *database.DB, logger *logrus.Logger) EVBetRepository {
	return &PostgresEVBetRepository{
		db:     db,
		logger: logger.WithField("component", "evbet_repository"),
	}
}

// InsertBatch persists a batch of scored bets. Each row is inserted
// independently so one malformed row cannot sink a whole cycle's output.
// Returns the number of rows actually written.
func (r *PostgresEVBetRepository) InsertBatch(ctx context.Context, bets []*models.EVBet) (int, error) {
	query := `
		INSERT INTO ev_bets (
			id, game_id, bookmaker, market, player, outcome, betting_line,
			price, ev_percent, true_prob, sharp_mean, mean_diff, std_dev,
			implied_means, sample_size, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	inserted := 0
	for _, bet := range bets {
		if bet.ID == uuid.Nil {
			bet.ID = uuid.New()
		}

		_, err := r.db.Pool().Exec(ctx, query,
			bet.ID, bet.GameID, bet.Bookmaker, bet.Market, bet.Player, bet.Outcome,
			bet.Line, bet.Price, bet.EVPercent, bet.TrueProb, bet.SharpMean,
			bet.MeanDiff, bet.StdDev, bet.ImpliedMeans, bet.SampleSize, true,
		)
		if err != nil {
			if ctx.Err() != nil {
				return inserted, ctx.Err()
			}
			r.logger.WithError(err).WithFields(logrus.Fields{
				"player":    bet.Player,
				"market":    bet.Market,
				"bookmaker": bet.Bookmaker,
			}).Warn("Failed to insert bet, skipping")
			continue
		}
		inserted++
	}

	return inserted, nil
}

// DeactivateCommenced deactivates bets whose game has already started
func (r *PostgresEVBetRepository) DeactivateCommenced(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE ev_bets b
		SET is_active = FALSE
		FROM games g
		WHERE b.game_id = g.id
		  AND b.is_active = TRUE
		  AND g.commence_time <= $1
	`

	tag, err := r.db.Pool().Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate commenced bets: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeactivateOlderThan deactivates bets created more than age before now.
// Quotes go stale well before the game starts, so old rows are retired
// even when the fixture is still upcoming.
func (r *PostgresEVBetRepository) DeactivateOlderThan(ctx context.Context, age time.Duration, now time.Time) (int64, error) {
	query := `
		UPDATE ev_bets
		SET is_active = FALSE
		WHERE is_active = TRUE
		  AND created_at < $1
	`

	tag, err := r.db.Pool().Exec(ctx, query, now.Add(-age))
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate stale bets: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ActiveBets retrieves active bets joined with game details, best EV first
func (r *PostgresEVBetRepository) ActiveBets(ctx context.Context, filter BetFilter) ([]*models.ActiveEVBet, error) {
	var (
		conditions = []string{"b.is_active = TRUE"}
		args       []interface{}
	)

	addArg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Bookmaker != "" {
		conditions = append(conditions, "b.bookmaker = "+addArg(filter.Bookmaker))
	}
	if filter.SportKey != "" {
		conditions = append(conditions, "g.sport_key = "+addArg(filter.SportKey))
	}
	if filter.Market != "" {
		conditions = append(conditions, "b.market = "+addArg(filter.Market))
	}
	if filter.Player != "" {
		conditions = append(conditions, "b.player ILIKE "+addArg("%"+filter.Player+"%"))
	}
	if filter.MinEV != nil {
		conditions = append(conditions, "b.ev_percent >= "+addArg(*filter.MinEV))
	}
	if filter.MaxEV != nil {
		conditions = append(conditions, "b.ev_percent <= "+addArg(*filter.MaxEV))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM ev_bets b
		JOIN games g ON g.id = b.game_id
		WHERE %s
		ORDER BY b.ev_percent DESC, b.created_at DESC
	`, activeBetColumns, strings.Join(conditions, " AND "))

	if filter.Limit > 0 {
		query += " LIMIT " + addArg(filter.Limit)
	}

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query active bets: %w", err)
	}
	defer rows.Close()

	var bets []*models.ActiveEVBet
	for rows.Next() {
		bet := &models.ActiveEVBet{}
		err := rows.Scan(
			&bet.ID, &bet.GameID, &bet.Bookmaker, &bet.Market, &bet.Player, &bet.Outcome,
			&bet.Line, &bet.Price, &bet.EVPercent, &bet.TrueProb, &bet.SharpMean,
			&bet.MeanDiff, &bet.StdDev, &bet.ImpliedMeans, &bet.SampleSize, &bet.IsActive,
			&bet.CreatedAt, &bet.SportTitle, &bet.HomeTeam, &bet.AwayTeam, &bet.CommenceTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan active bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// Statistics summarizes the stored bet population
func (r *PostgresEVBetRepository) Statistics(ctx context.Context) (*models.BetStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			AVG(ev_percent) FILTER (WHERE is_active),
			MAX(ev_percent) FILTER (WHERE is_active),
			MIN(created_at),
			MAX(created_at)
		FROM ev_bets
	`

	stats := &models.BetStatistics{}
	err := r.db.Pool().QueryRow(ctx, query).Scan(
		&stats.TotalBets, &stats.ActiveBets, &stats.AvgEVPercent,
		&stats.MaxEVPercent, &stats.OldestBet, &stats.NewestBet,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query bet statistics: %w", err)
	}

	return stats, nil
}
