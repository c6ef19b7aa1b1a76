package models

import (
	"time"

	"github.com/google/uuid"
)

// EVBet is the persisted form of a scored opportunity. The engine produces
// one per (soft-book quote, consensus) pair; the repository owns the
// activation lifecycle.
type EVBet struct {
	ID     uuid.UUID `db:"id" json:"id"`
	GameID string    `db:"game_id" json:"game_id"`

	Bookmaker string  `db:"bookmaker" json:"bookmaker"`
	Market    string  `db:"market" json:"market"`
	Player    string  `db:"player" json:"player"`
	Outcome   Side    `db:"outcome" json:"outcome"`
	Line      float64 `db:"betting_line" json:"betting_line"`
	Price     float64 `db:"price" json:"price"`

	SharpMean    float64   `db:"sharp_mean" json:"sharp_mean"`
	MeanDiff     float64   `db:"mean_diff" json:"mean_diff"`
	EVPercent    float64   `db:"ev_percent" json:"ev_percent"`
	TrueProb     float64   `db:"true_prob" json:"true_prob"`
	StdDev       *float64  `db:"std_dev" json:"std_dev,omitempty"`
	ImpliedMeans []float64 `db:"implied_means" json:"implied_means,omitempty"`
	SampleSize   int       `db:"sample_size" json:"sample_size"`

	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ActiveEVBet is an EVBet joined with its game for query API responses.
type ActiveEVBet struct {
	EVBet
	SportTitle   string    `db:"sport_title" json:"sport_title"`
	HomeTeam     string    `db:"home_team" json:"home_team"`
	AwayTeam     string    `db:"away_team" json:"away_team"`
	CommenceTime time.Time `db:"commence_time" json:"commence_time"`
}

// BetStatistics summarizes the stored bet population.
type BetStatistics struct {
	TotalBets    int        `json:"total_bets"`
	ActiveBets   int        `json:"active_bets"`
	AvgEVPercent *float64   `json:"avg_ev_percent,omitempty"`
	MaxEVPercent *float64   `json:"max_ev_percent,omitempty"`
	OldestBet    *time.Time `json:"oldest_bet,omitempty"`
	NewestBet    *time.Time `json:"newest_bet,omitempty"`
}
