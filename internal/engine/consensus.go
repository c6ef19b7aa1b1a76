package engine

import (
	"fmt"
	"math"

	"github.com/yourusername/prop-edge/internal/models"
)

// SharpEstimate is one sharp book's inferred mean of the underlying
// statistic, derived from its devigged over/under pair and its quoted line.
type SharpEstimate struct {
	Bookmaker   string
	Line        float64
	ImpliedMean float64
}

// Consensus aggregates the sharp-book estimates for one player/market into
// a single true mean. StdDevOfEstimates is nil when only one book
// contributed.
type Consensus struct {
	TrueMean          float64
	StdDevOfEstimates *float64
	SampleSize        int
	ImpliedMeans      []float64
}

// quotePair is one bookmaker's over/under quotes on one line.
type quotePair struct {
	bookmaker string
	line      float64
	over      *models.Quote
	under     *models.Quote
}

func (p *quotePair) complete() bool {
	return p.over != nil && p.under != nil
}

// pairQuotes groups quotes by (bookmaker, line) and keeps only lines where
// both sides are priced; devigging needs the full pair.
func pairQuotes(quotes []models.Quote) []quotePair {
	type pairKey struct {
		bookmaker string
		line      float64
	}
	byKey := make(map[pairKey]*quotePair)
	order := make([]pairKey, 0, len(quotes))

	for i := range quotes {
		q := quotes[i]
		key := pairKey{bookmaker: q.Bookmaker, line: q.Line}
		pair, ok := byKey[key]
		if !ok {
			pair = &quotePair{bookmaker: q.Bookmaker, line: q.Line}
			byKey[key] = pair
			order = append(order, key)
		}
		if q.Side == models.SideOver {
			pair.over = &quotes[i]
		} else {
			pair.under = &quotes[i]
		}
	}

	pairs := make([]quotePair, 0, len(order))
	for _, key := range order {
		if pair := byKey[key]; pair.complete() {
			pairs = append(pairs, *pair)
		}
	}
	return pairs
}

// BuildConsensus devigs every sharp book's over/under pair for one
// player/market and inverts each to an implied mean using the historical
// standard deviation for the prop. One distribution is assumed per
// player/market, so the same std dev is used for every sharp book's
// inversion. Returns ErrNoSharpConsensus when no sharp pair exists.
func BuildConsensus(sharpQuotes []models.Quote, stdDev float64) (*Consensus, error) {
	if stdDev <= 0 {
		return nil, fmt.Errorf("std dev %v: %w", stdDev, ErrInvalidParameter)
	}

	var estimates []SharpEstimate
	for _, pair := range pairQuotes(sharpQuotes) {
		fair, err := DevigPair(pair.over.Price, pair.under.Price)
		if err != nil {
			// One malformed sharp quote must not sink the prop.
			continue
		}
		// Phi(line) under the implied distribution is the under probability.
		mean, err := ImpliedMean(pair.line, fair.Under, stdDev)
		if err != nil {
			continue
		}
		estimates = append(estimates, SharpEstimate{
			Bookmaker:   pair.bookmaker,
			Line:        pair.line,
			ImpliedMean: mean,
		})
	}

	if len(estimates) == 0 {
		return nil, ErrNoSharpConsensus
	}

	means := make([]float64, len(estimates))
	var sum float64
	for i, est := range estimates {
		means[i] = est.ImpliedMean
		sum += est.ImpliedMean
	}
	trueMean := sum / float64(len(means))

	consensus := &Consensus{
		TrueMean:     trueMean,
		SampleSize:   len(means),
		ImpliedMeans: means,
	}
	if len(means) > 1 {
		sd := sampleStdDev(means, trueMean)
		consensus.StdDevOfEstimates = &sd
	}
	return consensus, nil
}

// sampleStdDev computes the n-1 standard deviation. Callers guarantee
// len(values) > 1.
func sampleStdDev(values []float64, mean float64) float64 {
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
