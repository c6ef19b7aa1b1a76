// Package stats supplies historical per-player statistic distributions used
// to parameterize the engine's normal model. A missing player or market is
// a valid miss, never an error.
package stats

// Source answers distribution lookups for a (player, market) pair. The
// market key is the odds provider's market identifier, e.g.
// "player_pass_yds".
type Source interface {
	// StdDev returns the standard deviation of the player's historical
	// game-by-game values for the market, and whether any history exists.
	StdDev(player, market string) (float64, bool)

	// Mean returns the historical mean for the same population.
	Mean(player, market string) (float64, bool)
}
