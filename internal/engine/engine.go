package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/yourusername/prop-edge/internal/models"
)

// StatsSource supplies the historical standard deviation for a player's
// statistic. Absence is a valid, expected state.
type StatsSource interface {
	StdDev(player, market string) (float64, bool)
}

// Config holds the scoring-pass policy: which books are treated as sharp,
// which are scored as soft, the minimum EV to keep, and the pass
// parallelism. Passed explicitly so scoring stays a pure function of its
// inputs.
type Config struct {
	SharpBooks   []string
	SoftBooks    []string
	MinEVPercent float64
	Workers      int
}

// PassSummary counts what happened during one scoring pass. Skips are
// expected operating conditions, not failures.
type PassSummary struct {
	Props              int
	SkippedNoStats     int
	SkippedNoConsensus int
	Scored             int
	Filtered           int
	Kept               int
}

// Evaluator runs scoring passes over raw quote batches.
type Evaluator struct {
	cfg   Config
	stats StatsSource
}

// NewEvaluator creates an evaluator with the given policy and stats source.
func NewEvaluator(cfg Config, stats StatsSource) *Evaluator {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Evaluator{cfg: cfg, stats: stats}
}

// propQuotes is the engine's unit of work: all quotes on one player/market,
// split by book role.
type propQuotes struct {
	key   models.PropKey
	sharp []models.Quote
	soft  []models.Quote
}

// propOutcome is what scoring one prop produced.
type propOutcome struct {
	results            []*EVResult
	skippedNoStats     bool
	skippedNoConsensus bool
}

// Evaluate runs one scoring pass: per player/market, build the sharp
// consensus and score every soft quote against it, then filter. Props are
// independent, so they are scored concurrently; per-prop failures are
// isolated and surface only in the summary. Output preserves the order in
// which props first appear in the input.
func (e *Evaluator) Evaluate(ctx context.Context, quotes []models.Quote) ([]*EVResult, PassSummary, error) {
	props := e.groupProps(quotes)
	summary := PassSummary{Props: len(props)}

	outcomes := make([]propOutcome, len(props))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < e.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = e.scoreProp(props[i])
			}
		}()
	}

	for i := range props {
		if err := ctx.Err(); err != nil {
			close(jobs)
			wg.Wait()
			return nil, summary, err
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var scored []*EVResult
	for _, out := range outcomes {
		if out.skippedNoStats {
			summary.SkippedNoStats++
		}
		if out.skippedNoConsensus {
			summary.SkippedNoConsensus++
		}
		scored = append(scored, out.results...)
	}
	summary.Scored = len(scored)

	kept := FilterResults(scored, e.cfg.MinEVPercent)
	summary.Kept = len(kept)
	summary.Filtered = summary.Scored - summary.Kept

	return kept, summary, nil
}

// scoreProp handles one player/market pair end to end. Any error is
// absorbed into the outcome so one bad prop never aborts the batch.
func (e *Evaluator) scoreProp(prop propQuotes) (out propOutcome) {
	stdDev, ok := e.stats.StdDev(prop.key.Player, prop.key.Market)
	if !ok || stdDev <= 0 {
		out.skippedNoStats = true
		return out
	}

	consensus, err := BuildConsensus(prop.sharp, stdDev)
	if err != nil {
		if errors.Is(err, ErrNoSharpConsensus) {
			out.skippedNoConsensus = true
		}
		return out
	}

	for _, quote := range prop.soft {
		result, err := Score(quote, consensus, stdDev)
		if err != nil {
			// Malformed soft quote; skip it, keep the rest.
			continue
		}
		out.results = append(out.results, result)
	}
	return out
}

// groupProps splits the raw batch into per-prop work units, partitioned by
// book role. Quotes from books in neither set are ignored.
func (e *Evaluator) groupProps(quotes []models.Quote) []propQuotes {
	sharp := make(map[string]bool, len(e.cfg.SharpBooks))
	for _, book := range e.cfg.SharpBooks {
		sharp[book] = true
	}
	soft := make(map[string]bool, len(e.cfg.SoftBooks))
	for _, book := range e.cfg.SoftBooks {
		soft[book] = true
	}

	byKey := make(map[models.PropKey]*propQuotes)
	var order []models.PropKey
	for _, q := range quotes {
		if !sharp[q.Bookmaker] && !soft[q.Bookmaker] {
			continue
		}
		key := models.PropKey{Player: q.Player, Market: q.Market}
		prop, ok := byKey[key]
		if !ok {
			prop = &propQuotes{key: key}
			byKey[key] = prop
			order = append(order, key)
		}
		if sharp[q.Bookmaker] {
			prop.sharp = append(prop.sharp, q)
		}
		if soft[q.Bookmaker] {
			prop.soft = append(prop.soft, q)
		}
	}

	props := make([]propQuotes, len(order))
	for i, key := range order {
		props[i] = *byKey[key]
	}
	return props
}
