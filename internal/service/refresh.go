// Package service orchestrates the refresh cycle: fetch odds, score
// them, and persist the surviving opportunities.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/engine"
	"github.com/yourusername/prop-edge/internal/logger"
	"github.com/yourusername/prop-edge/internal/metrics"
	"github.com/yourusername/prop-edge/internal/models"
	"github.com/yourusername/prop-edge/internal/oddsapi"
	"github.com/yourusername/prop-edge/internal/repository"
)

// OddsProvider is the slice of the odds client the refresh cycle needs.
type OddsProvider interface {
	GetEvents(ctx context.Context, sport string, commenceTimeTo time.Time) ([]oddsapi.Event, error)
	GetEventOdds(ctx context.Context, sport, eventID string, markets, bookmakers []string) (*oddsapi.EventOdds, error)
	Quota() oddsapi.Quota
}

// QuoteNormalizer flattens a provider odds payload into engine quotes.
type QuoteNormalizer interface {
	Quotes(odds *oddsapi.EventOdds) []models.Quote
}

// PropEvaluator scores one event's quotes.
type PropEvaluator interface {
	Evaluate(ctx context.Context, quotes []models.Quote) ([]*engine.EVResult, engine.PassSummary, error)
}

// SportJob binds one sport to the markets requested for it and the
// evaluator that scores it. Evaluators differ per sport because each
// carries that sport's historical stats source.
type SportJob struct {
	SportKey  string
	Markets   []string
	Evaluator PropEvaluator
}

// RefreshConfig holds the cycle policy.
type RefreshConfig struct {
	Bookmakers    []string
	LookaheadDays int
	StaleBetAge   time.Duration
}

// RefreshService runs the full recompute cycle.
type RefreshService struct {
	client     OddsProvider
	normalizer QuoteNormalizer
	gameRepo   repository.GameRepository
	betRepo    repository.EVBetRepository
	sports     []SportJob
	cfg        RefreshConfig
	logger     *logrus.Entry

	// onCycleComplete, when set, receives the completion time of every
	// successful cycle. Used to feed the readiness probe.
	onCycleComplete func(time.Time)

	now func() time.Time
}

// NewRefreshService creates a refresh service
func NewRefreshService(
	client OddsProvider,
	normalizer QuoteNormalizer,
	gameRepo repository.GameRepository,
	betRepo repository.EVBetRepository,
	sports []SportJob,
	cfg RefreshConfig,
	log *logrus.Logger,
) *RefreshService {
	return &RefreshService{
		client:     client,
		normalizer: normalizer,
		gameRepo:   gameRepo,
		betRepo:    betRepo,
		sports:     sports,
		cfg:        cfg,
		logger:     logger.WithComponent(log, "refresh_service"),
		now:        time.Now,
	}
}

// OnCycleComplete registers a callback invoked after every successful cycle.
func (s *RefreshService) OnCycleComplete(fn func(time.Time)) {
	s.onCycleComplete = fn
}

// Run executes one full refresh cycle. Per-event failures are logged and
// skipped; the cycle fails only when nothing could be fetched at all or
// the context is cancelled.
func (s *RefreshService) Run(ctx context.Context) error {
	start := s.now()
	metrics.RecordCycleStart()

	cycleID := uuid.New().String()[:8]
	log := logger.WithCycle(s.logger, cycleID)
	log.Info("Refresh cycle starting")

	s.retireBets(ctx, start)

	var (
		sportErrors int
		totalKept   int
	)

	for _, job := range s.sports {
		if err := ctx.Err(); err != nil {
			metrics.RecordCycleError()
			return err
		}

		kept, err := s.refreshSport(ctx, job, start)
		if err != nil {
			sportErrors++
			log.WithError(err).WithField("sport", job.SportKey).Error("Sport refresh failed")
			continue
		}
		totalKept += kept
	}

	s.updateQuotaMetric()
	s.updateActiveBetsMetric(ctx)

	if len(s.sports) > 0 && sportErrors == len(s.sports) {
		metrics.RecordCycleError()
		return fmt.Errorf("all %d sport refreshes failed", sportErrors)
	}

	finished := s.now()
	metrics.RecordCycleComplete(finished.Sub(start).Seconds(), float64(finished.Unix()))
	if s.onCycleComplete != nil {
		s.onCycleComplete(finished)
	}

	log.WithFields(logrus.Fields{
		"opportunities": totalKept,
		"duration":      finished.Sub(start).String(),
	}).Info("Refresh cycle complete")

	return nil
}

// retireBets deactivates rows for commenced games and rows older than the
// stale age. Failures here are logged but do not abort the cycle; the next
// pass retires them.
func (s *RefreshService) retireBets(ctx context.Context, now time.Time) {
	commenced, err := s.betRepo.DeactivateCommenced(ctx, now)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to deactivate commenced bets")
	}

	var stale int64
	if s.cfg.StaleBetAge > 0 {
		stale, err = s.betRepo.DeactivateOlderThan(ctx, s.cfg.StaleBetAge, now)
		if err != nil {
			s.logger.WithError(err).Warn("Failed to deactivate stale bets")
		}
	}

	if commenced+stale > 0 {
		metrics.BetsDeactivatedTotal.Add(float64(commenced + stale))
		s.logger.WithFields(logrus.Fields{
			"commenced": commenced,
			"stale":     stale,
		}).Info("Deactivated bets")
	}
}

// refreshSport fetches and scores every upcoming event for one sport,
// returning the number of opportunities persisted.
func (s *RefreshService) refreshSport(ctx context.Context, job SportJob, now time.Time) (int, error) {
	horizon := now.Add(time.Duration(s.cfg.LookaheadDays) * 24 * time.Hour)

	events, err := s.client.GetEvents(ctx, job.SportKey, horizon)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	log := s.logger.WithField("sport", job.SportKey)
	log.WithField("events", len(events)).Info("Fetched upcoming events")

	kept := 0
	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return kept, err
		}

		n, err := s.refreshEvent(ctx, job, event)
		if err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"event_id": event.ID,
				"matchup":  event.AwayTeam + " @ " + event.HomeTeam,
			}).Warn("Event refresh failed, skipping")
			continue
		}
		kept += n
	}

	return kept, nil
}

// refreshEvent processes a single event: upsert the game, fetch its prop
// odds, score them, and persist what survives filtering.
func (s *RefreshService) refreshEvent(ctx context.Context, job SportJob, event oddsapi.Event) (int, error) {
	game := &models.Game{
		ID:           event.ID,
		SportKey:     event.SportKey,
		SportTitle:   event.SportTitle,
		CommenceTime: event.CommenceTime,
		HomeTeam:     event.HomeTeam,
		AwayTeam:     event.AwayTeam,
	}
	if err := s.gameRepo.Upsert(ctx, game); err != nil {
		return 0, err
	}

	fetchStart := s.now()
	odds, err := s.client.GetEventOdds(ctx, job.SportKey, event.ID, job.Markets, s.cfg.Bookmakers)
	if err != nil {
		return 0, err
	}
	metrics.EventOddsFetchDuration.Observe(s.now().Sub(fetchStart).Seconds())

	quotes := s.normalizer.Quotes(odds)
	metrics.QuotesProcessedTotal.Add(float64(len(quotes)))
	if len(quotes) == 0 {
		return 0, nil
	}

	results, summary, err := job.Evaluator.Evaluate(ctx, quotes)
	if err != nil {
		return 0, err
	}

	metrics.PropsEvaluatedTotal.Add(float64(summary.Props))
	metrics.RecordPropsSkipped("no_stats", summary.SkippedNoStats)
	metrics.RecordPropsSkipped("no_consensus", summary.SkippedNoConsensus)

	if len(results) == 0 {
		return 0, nil
	}

	bets := make([]*models.EVBet, 0, len(results))
	for _, r := range results {
		bets = append(bets, betFromResult(event.ID, r))
	}

	inserted, err := s.betRepo.InsertBatch(ctx, bets)
	if err != nil {
		return inserted, err
	}

	metrics.OpportunitiesFoundTotal.Add(float64(len(results)))
	metrics.BetsInsertedTotal.Add(float64(inserted))

	s.logger.WithFields(logrus.Fields{
		"event_id":      event.ID,
		"quotes":        len(quotes),
		"props":         summary.Props,
		"opportunities": len(results),
		"inserted":      inserted,
	}).Info("Event scored")

	return inserted, nil
}

// betFromResult converts an engine result into its persisted form.
func betFromResult(gameID string, r *engine.EVResult) *models.EVBet {
	stdDev := r.StdDev
	return &models.EVBet{
		GameID:       gameID,
		Bookmaker:    r.Bookmaker,
		Market:       r.Market,
		Player:       r.Player,
		Outcome:      r.Outcome,
		Line:         r.Line,
		Price:        r.Price,
		SharpMean:    r.SharpMean,
		MeanDiff:     r.MeanDiff,
		EVPercent:    r.EVPercent,
		TrueProb:     r.TrueProb,
		StdDev:       &stdDev,
		ImpliedMeans: r.ImpliedMeans,
		SampleSize:   r.SampleSize,
		IsActive:     true,
	}
}

// updateQuotaMetric publishes the provider's remaining request quota.
func (s *RefreshService) updateQuotaMetric() {
	quota := s.client.Quota()
	if quota.Remaining == "" {
		return
	}
	remaining, err := strconv.ParseFloat(quota.Remaining, 64)
	if err != nil {
		return
	}
	metrics.UpdateQuota(remaining)
}

// updateActiveBetsMetric publishes the current active bet count.
func (s *RefreshService) updateActiveBetsMetric(ctx context.Context) {
	stats, err := s.betRepo.Statistics(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read bet statistics")
		return
	}
	metrics.ActiveBets.Set(float64(stats.ActiveBets))
}
