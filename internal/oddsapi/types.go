package oddsapi

import "time"

// Event is one scheduled game from the provider's events endpoint.
type Event struct {
	ID           string    `json:"id"`
	SportKey     string    `json:"sport_key"`
	SportTitle   string    `json:"sport_title"`
	CommenceTime time.Time `json:"commence_time"`
	HomeTeam     string    `json:"home_team"`
	AwayTeam     string    `json:"away_team"`
}

// EventOdds is the per-event odds payload: every requested bookmaker's
// markets for the event.
type EventOdds struct {
	Event
	Bookmakers []BookmakerOdds `json:"bookmakers"`
}

// BookmakerOdds is one bookmaker's quoted markets.
type BookmakerOdds struct {
	Key     string       `json:"key"`
	Title   string       `json:"title"`
	Markets []MarketOdds `json:"markets"`
}

// MarketOdds is one market's outcomes, e.g. player_pass_yds.
type MarketOdds struct {
	Key        string    `json:"key"`
	LastUpdate time.Time `json:"last_update"`
	Outcomes   []Outcome `json:"outcomes"`
}

// Outcome is a single priced side. For player props the player name rides
// in Description and the line in Point.
type Outcome struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Point       float64 `json:"point"`
}

// Quota reports the provider's request metering, read from response
// headers on every odds call.
type Quota struct {
	Remaining string
	Used      string
}
