package engine

import "github.com/yourusername/prop-edge/internal/models"

// EVResult is one scored soft-book outcome with full traceability back to
// the consensus that produced it. Immutable once computed.
type EVResult struct {
	Bookmaker    string
	Market       string
	Player       string
	Outcome      models.Side
	Line         float64
	Price        float64
	SharpMean    float64
	MeanDiff     float64
	EVPercent    float64
	TrueProb     float64
	StdDev       float64
	ImpliedMeans []float64
	SampleSize   int
}

// Score computes the expected value of one soft-book quote against a sharp
// consensus. The soft book's own line is scored against the consensus mean;
// the lines need not match. EV is the expected return per unit staked at
// decimal odds, as a percentage.
func Score(quote models.Quote, consensus *Consensus, stdDev float64) (*EVResult, error) {
	trueProb, err := TrueProbability(quote.Line, consensus.TrueMean, stdDev, quote.Side)
	if err != nil {
		return nil, err
	}
	if _, err := PriceToProbability(quote.Price); err != nil {
		return nil, err
	}

	evPercent := (trueProb*quote.Price - 1) * 100

	return &EVResult{
		Bookmaker:    quote.Bookmaker,
		Market:       quote.Market,
		Player:       quote.Player,
		Outcome:      quote.Side,
		Line:         quote.Line,
		Price:        quote.Price,
		SharpMean:    consensus.TrueMean,
		MeanDiff:     quote.Line - consensus.TrueMean,
		EVPercent:    evPercent,
		TrueProb:     trueProb,
		StdDev:       stdDev,
		ImpliedMeans: consensus.ImpliedMeans,
		SampleSize:   consensus.SampleSize,
	}, nil
}
