package engine

import "fmt"

// ImpliedProbabilityPair holds one bookmaker's fair probabilities for both
// sides of a line after vig removal. The sides sum to 1.
type ImpliedProbabilityPair struct {
	Over  float64
	Under float64
}

// Devig strips the bookmaker's overround from a set of decimal prices quoted
// on mutually exclusive, exhaustive outcomes of one line. Multiplicative
// method: each naive probability is divided by their sum, which preserves
// relative probabilities for skewed odds and works for any outcome count.
// An overround below 1 is a pricing anomaly but still devigs cleanly.
func Devig(prices ...float64) ([]float64, error) {
	if len(prices) < 2 {
		return nil, fmt.Errorf("devig requires at least 2 prices, got %d", len(prices))
	}

	naive := make([]float64, len(prices))
	var overround float64
	for i, price := range prices {
		p, err := PriceToProbability(price)
		if err != nil {
			return nil, err
		}
		naive[i] = p
		overround += p
	}

	fair := make([]float64, len(naive))
	for i, p := range naive {
		fair[i] = p / overround
	}
	return fair, nil
}

// DevigPair devigs a single over/under price pair from one bookmaker.
func DevigPair(overPrice, underPrice float64) (ImpliedProbabilityPair, error) {
	fair, err := Devig(overPrice, underPrice)
	if err != nil {
		return ImpliedProbabilityPair{}, err
	}
	return ImpliedProbabilityPair{Over: fair[0], Under: fair[1]}, nil
}
