// Package scheduler manages the periodic refresh cycle.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner runs one full refresh cycle.
type CycleRunner interface {
	Run(ctx context.Context) error
}

// Scheduler triggers refresh cycles on a fixed interval
type Scheduler struct {
	cron            *cron.Cron
	runner          CycleRunner
	logger          *logrus.Entry
	cycleTimeout    time.Duration
	gracefulTimeout time.Duration

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID

	// cycleBusy guards against overlapping cycles when one run outlasts
	// the interval.
	cycleBusy atomic.Bool
}

// NewScheduler creates a new scheduler
func NewScheduler(runner CycleRunner, cycleTimeout time.Duration, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		runner:          runner,
		logger:          logger.WithField("component", "scheduler"),
		cycleTimeout:    cycleTimeout,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRefresh schedules the refresh cycle at a fixed interval
func (s *Scheduler) ScheduleRefresh(intervalMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	if intervalMinutes < 1 {
		intervalMinutes = 1
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %dm", intervalMinutes), s.runCycle)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("interval_minutes", intervalMinutes).Info("Scheduled refresh cycle")

	return nil
}

// runCycle executes one refresh cycle with a time budget. A cycle still
// in flight when the next tick fires causes the tick to be skipped.
func (s *Scheduler) runCycle() {
	if !s.cycleBusy.CompareAndSwap(false, true) {
		s.logger.Warn("Previous refresh cycle still running, skipping this tick")
		return
	}
	defer s.cycleBusy.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.cycleTimeout)
	defer cancel()

	if err := s.runner.Run(ctx); err != nil {
		s.logger.WithError(err).Error("Refresh cycle failed")
	}
}

// Start starts the scheduler. When runOnStart is set, one cycle is
// executed immediately in the calling goroutine before ticking begins.
func (s *Scheduler) Start(runOnStart bool) error {
	s.mu.Lock()

	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		s.mu.Unlock()
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	s.mu.Unlock()

	if runOnStart {
		s.runCycle()
	}

	return nil
}

// Stop gracefully stops the scheduler, waiting for any in-flight cycle
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Timed out waiting for in-flight cycle to finish")
	}

	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled cycle
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	next := time.Time{}
	for _, id := range s.jobIDs {
		entry := s.cron.Entry(id)
		if next.IsZero() || (!entry.Next.IsZero() && entry.Next.Before(next)) {
			next = entry.Next
		}
	}

	return next
}
