package models

import "time"

// Game represents a scheduled fixture as reported by the odds provider.
// The provider's event ID is used as the primary key.
type Game struct {
	ID           string    `db:"id" json:"id" validate:"required"`
	SportKey     string    `db:"sport_key" json:"sport_key" validate:"required"`
	SportTitle   string    `db:"sport_title" json:"sport_title" validate:"required"`
	CommenceTime time.Time `db:"commence_time" json:"commence_time" validate:"required"`
	HomeTeam     string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam     string    `db:"away_team" json:"away_team" validate:"required"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// HasCommenced reports whether the game has already started.
func (g *Game) HasCommenced(now time.Time) bool {
	return g.CommenceTime.Before(now)
}
