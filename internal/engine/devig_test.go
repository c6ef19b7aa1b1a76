package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevigPair(t *testing.T) {
	tests := []struct {
		name       string
		overPrice  float64
		underPrice float64
		wantOver   float64
		wantUnder  float64
		wantErr    error
	}{
		{
			name:       "symmetric -110 pair",
			overPrice:  1.91,
			underPrice: 1.91,
			wantOver:   0.5,
			wantUnder:  0.5,
		},
		{
			name:       "skewed pair",
			overPrice:  1.87,
			underPrice: 1.95,
			wantOver:   0.5104712042,
			wantUnder:  0.4895287958,
		},
		{
			name:       "no margin passes through unchanged",
			overPrice:  2.5,
			underPrice: 5.0 / 3.0,
			wantOver:   0.4,
			wantUnder:  0.6,
		},
		{
			name:       "invalid over price",
			overPrice:  1.0,
			underPrice: 1.91,
			wantErr:    ErrInvalidPrice,
		},
		{
			name:       "invalid under price",
			overPrice:  1.91,
			underPrice: 0.5,
			wantErr:    ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := DevigPair(tt.overPrice, tt.underPrice)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantOver, pair.Over, 1e-9)
			assert.InDelta(t, tt.wantUnder, pair.Under, 1e-9)
		})
	}
}

func TestDevigProbabilitiesSumToOne(t *testing.T) {
	priceSets := [][]float64{
		{1.91, 1.91},
		{1.5, 2.8},
		{1.05, 12.0},
		{2.1, 3.4, 3.9}, // three-way market
		{1.8, 2.2, 9.0, 15.0},
	}

	for _, prices := range priceSets {
		fair, err := Devig(prices...)
		require.NoError(t, err)

		var sum float64
		for _, p := range fair {
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "prices %v", prices)
	}
}

func TestDevigRequiresAtLeastTwoPrices(t *testing.T) {
	_, err := Devig(1.91)
	assert.Error(t, err)

	_, err = Devig()
	assert.Error(t, err)
}

func TestDevigUnderroundAnomalyStillNormalizes(t *testing.T) {
	// Probabilities summing below 1 signal a data anomaly; multiplicative
	// devigging still rescales them onto the simplex.
	fair, err := Devig(2.2, 2.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fair[0], 1e-9)
	assert.InDelta(t, 0.5, fair[1], 1e-9)
}
