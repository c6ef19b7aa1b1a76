package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-edge/internal/models"
)

// stubStats is a fixed (player, market) -> std dev table.
type stubStats map[models.PropKey]float64

func (s stubStats) StdDev(player, market string) (float64, bool) {
	sd, ok := s[models.PropKey{Player: player, Market: market}]
	return sd, ok
}

func passQuote(book, player string, side models.Side, line, price float64) models.Quote {
	return models.Quote{
		Bookmaker: book,
		Market:    "player_pass_yds",
		Player:    player,
		Side:      side,
		Line:      line,
		Price:     price,
	}
}

func testConfig() Config {
	return Config{
		SharpBooks:   []string{"fanduel", "draftkings"},
		SoftBooks:    []string{"prizepicks", "underdog"},
		MinEVPercent: 0,
		Workers:      2,
	}
}

func TestEvaluateFullPass(t *testing.T) {
	stats := stubStats{
		{Player: "Josh Allen", Market: "player_pass_yds"}: 12.45,
	}

	quotes := []models.Quote{
		// Two sharp books.
		passQuote("fanduel", "Josh Allen", models.SideOver, 280.5, 1.85),
		passQuote("fanduel", "Josh Allen", models.SideUnder, 280.5, 1.95),
		passQuote("draftkings", "Josh Allen", models.SideOver, 281.5, 1.91),
		passQuote("draftkings", "Josh Allen", models.SideUnder, 281.5, 1.91),
		// Soft book prices both sides of a stale line.
		passQuote("prizepicks", "Josh Allen", models.SideOver, 275.5, 1.91),
		passQuote("prizepicks", "Josh Allen", models.SideUnder, 275.5, 2.05),
	}

	results, summary, err := NewEvaluator(testConfig(), stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Props)
	assert.Equal(t, 2, summary.Scored)
	assert.Equal(t, 1, summary.Kept)
	assert.Equal(t, 1, summary.Filtered, "negative-EV under side drops at threshold 0")

	require.Len(t, results, 1)
	over := results[0]
	assert.Equal(t, models.SideOver, over.Outcome)
	assert.InDelta(t, 281.2053498825, over.SharpMean, 1e-6)
	assert.InDelta(t, 0.6766175426, over.TrueProb, 1e-6)
	assert.InDelta(t, 29.2339506432, over.EVPercent, 1e-6)
	assert.InDelta(t, 275.5-281.2053498825, over.MeanDiff, 1e-6)
	assert.Equal(t, 2, over.SampleSize)
}

func TestEvaluateSkipsPropWithoutSharpQuotes(t *testing.T) {
	stats := stubStats{
		{Player: "Josh Allen", Market: "player_pass_yds"}:      12.45,
		{Player: "Stefon Diggs", Market: "player_pass_yds"}:    9.0,
	}

	quotes := []models.Quote{
		// Scoreable prop.
		passQuote("fanduel", "Josh Allen", models.SideOver, 280.5, 1.91),
		passQuote("fanduel", "Josh Allen", models.SideUnder, 280.5, 1.91),
		passQuote("prizepicks", "Josh Allen", models.SideOver, 275.5, 1.91),
		// Soft-only prop: no sharp book quotes it.
		passQuote("prizepicks", "Stefon Diggs", models.SideOver, 60.5, 1.91),
	}

	results, summary, err := NewEvaluator(testConfig(), stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Props)
	assert.Equal(t, 1, summary.SkippedNoConsensus)
	require.Len(t, results, 1)
	assert.Equal(t, "Josh Allen", results[0].Player)
}

func TestEvaluateSkipsPropWithoutStats(t *testing.T) {
	stats := stubStats{} // nobody has history

	quotes := []models.Quote{
		passQuote("fanduel", "Josh Allen", models.SideOver, 280.5, 1.91),
		passQuote("fanduel", "Josh Allen", models.SideUnder, 280.5, 1.91),
		passQuote("prizepicks", "Josh Allen", models.SideOver, 275.5, 1.91),
	}

	results, summary, err := NewEvaluator(testConfig(), stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Equal(t, 1, summary.SkippedNoStats)
	assert.Zero(t, summary.Scored)
}

func TestEvaluateIsolatesMalformedQuotes(t *testing.T) {
	stats := stubStats{
		{Player: "Josh Allen", Market: "player_pass_yds"}:   12.45,
		{Player: "James Cook", Market: "player_pass_yds"}:   8.0,
	}

	quotes := []models.Quote{
		// Corrupt soft price on one prop.
		passQuote("fanduel", "Josh Allen", models.SideOver, 280.5, 1.91),
		passQuote("fanduel", "Josh Allen", models.SideUnder, 280.5, 1.91),
		passQuote("prizepicks", "Josh Allen", models.SideOver, 275.5, 0.98),
		// The rest of the batch still scores.
		passQuote("fanduel", "James Cook", models.SideOver, 55.5, 1.91),
		passQuote("fanduel", "James Cook", models.SideUnder, 55.5, 1.91),
		passQuote("prizepicks", "James Cook", models.SideOver, 50.5, 1.91),
	}

	results, summary, err := NewEvaluator(testConfig(), stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "James Cook", results[0].Player)
	assert.Equal(t, 2, summary.Props)
}

func TestEvaluateIgnoresUnconfiguredBooks(t *testing.T) {
	stats := stubStats{
		{Player: "Josh Allen", Market: "player_pass_yds"}: 12.45,
	}

	quotes := []models.Quote{
		passQuote("some-exchange", "Josh Allen", models.SideOver, 280.5, 1.91),
		passQuote("some-exchange", "Josh Allen", models.SideUnder, 280.5, 1.91),
	}

	results, summary, err := NewEvaluator(testConfig(), stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, summary.Props)
}

func TestEvaluateThresholdBoundary(t *testing.T) {
	stats := stubStats{
		{Player: "Josh Allen", Market: "player_pass_yds"}: 12.45,
	}
	quotes := []models.Quote{
		passQuote("fanduel", "Josh Allen", models.SideOver, 280.5, 1.85),
		passQuote("fanduel", "Josh Allen", models.SideUnder, 280.5, 1.95),
		passQuote("draftkings", "Josh Allen", models.SideOver, 281.5, 1.91),
		passQuote("draftkings", "Josh Allen", models.SideUnder, 281.5, 1.91),
		passQuote("prizepicks", "Josh Allen", models.SideOver, 275.5, 1.91),
	}

	cfg := testConfig()
	// The over scores about 29.23%; a threshold just under keeps it,
	// just over drops it.
	cfg.MinEVPercent = 29.0
	results, _, err := NewEvaluator(cfg, stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	cfg.MinEVPercent = 30.0
	results, _, err = NewEvaluator(cfg, stats).Evaluate(context.Background(), quotes)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEvaluateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats := stubStats{
		{Player: "Josh Allen", Market: "player_pass_yds"}: 12.45,
	}
	quotes := []models.Quote{
		passQuote("fanduel", "Josh Allen", models.SideOver, 280.5, 1.91),
		passQuote("fanduel", "Josh Allen", models.SideUnder, 280.5, 1.91),
	}

	_, _, err := NewEvaluator(testConfig(), stats).Evaluate(ctx, quotes)
	assert.ErrorIs(t, err, context.Canceled)
}
