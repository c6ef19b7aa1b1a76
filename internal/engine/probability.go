// Package engine implements the probability and expected-value model for
// player prop lines: devigging bookmaker prices, inverting quoted lines to
// implied means under a normal model, building a consensus across sharp
// books, and scoring soft-book prices against it.
package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/prop-edge/internal/models"
)

// PriceToProbability converts a decimal price to its naive implied
// probability (1/price), before any vig removal.
func PriceToProbability(price float64) (float64, error) {
	if price <= 1.0 {
		return 0, fmt.Errorf("price %v: %w", price, ErrInvalidPrice)
	}
	return 1.0 / price, nil
}

// ProbabilityToZ returns the standard normal quantile for prob, i.e. the z
// such that Phi(z) == prob.
func ProbabilityToZ(prob float64) (float64, error) {
	if prob <= 0 || prob >= 1 {
		return 0, fmt.Errorf("probability %v: %w", prob, ErrProbabilityDomain)
	}
	return math.Sqrt2 * math.Erfinv(2*prob-1), nil
}

// ImpliedMean returns the mean of a normal distribution whose CDF at line
// equals prob, given the distribution's standard deviation.
func ImpliedMean(line, prob, stdDev float64) (float64, error) {
	if stdDev <= 0 {
		return 0, fmt.Errorf("std dev %v: %w", stdDev, ErrInvalidParameter)
	}
	z, err := ProbabilityToZ(prob)
	if err != nil {
		return 0, err
	}
	return line - z*stdDev, nil
}

// TrueProbability returns the model probability of the given side of a line
// under a normal distribution with the given mean and standard deviation:
// P(X > line) for over, P(X <= line) for under.
func TrueProbability(line, mean, stdDev float64, side models.Side) (float64, error) {
	if stdDev <= 0 {
		return 0, fmt.Errorf("std dev %v: %w", stdDev, ErrInvalidParameter)
	}
	under := normalCDF((line - mean) / stdDev)
	if side == models.SideUnder {
		return under, nil
	}
	return 1 - under, nil
}

// normalCDF is the standard normal CDF. Erfc keeps precision in the tails,
// so the ImpliedMean/TrueProbability round trip holds well past 1e-6.
func normalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}
