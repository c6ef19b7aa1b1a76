package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/prop-edge/internal/models"
)

func TestScoreOverAgainstHigherConsensusMean(t *testing.T) {
	consensus := &Consensus{
		TrueMean:     285.0,
		SampleSize:   2,
		ImpliedMeans: []float64{284.0, 286.0},
	}
	quote := models.Quote{
		Bookmaker: "prizepicks",
		Market:    "player_pass_yds",
		Player:    "Josh Allen",
		Side:      models.SideOver,
		Line:      275.5,
		Price:     1.91,
	}

	result, err := Score(quote, consensus, 12.45)
	require.NoError(t, err)

	assert.InDelta(t, 0.7772838699, result.TrueProb, 1e-6)
	assert.InDelta(t, 48.4612191574, result.EVPercent, 1e-6)
	assert.InDelta(t, 48.46, math.Round(result.EVPercent*100)/100, 1e-9)

	assert.Equal(t, "prizepicks", result.Bookmaker)
	assert.Equal(t, models.SideOver, result.Outcome)
	assert.InDelta(t, 275.5-285.0, result.MeanDiff, 1e-9)
	assert.InDelta(t, 285.0, result.SharpMean, 1e-9)
	assert.InDelta(t, 12.45, result.StdDev, 1e-9)
	assert.Equal(t, 2, result.SampleSize)
	assert.Equal(t, consensus.ImpliedMeans, result.ImpliedMeans)
}

func TestScoreUnderSideIsNegativeEV(t *testing.T) {
	consensus := &Consensus{TrueMean: 285.0, SampleSize: 1, ImpliedMeans: []float64{285.0}}
	quote := models.Quote{
		Bookmaker: "underdog",
		Market:    "player_pass_yds",
		Player:    "Josh Allen",
		Side:      models.SideUnder,
		Line:      275.5,
		Price:     1.91,
	}

	result, err := Score(quote, consensus, 12.45)
	require.NoError(t, err)

	assert.InDelta(t, 1-0.7772838699, result.TrueProb, 1e-6)
	assert.Less(t, result.EVPercent, 0.0)
}

func TestScoreRejectsMalformedInputs(t *testing.T) {
	consensus := &Consensus{TrueMean: 285.0, SampleSize: 1}

	_, err := Score(models.Quote{Side: models.SideOver, Line: 275.5, Price: 1.0}, consensus, 12.45)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = Score(models.Quote{Side: models.SideOver, Line: 275.5, Price: 1.91}, consensus, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
