// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

const (
	reconcileJob     = "points_reconciliation"
	reconcileTimeout = 10 * time.Minute
)

// Locker keeps a job from running on more than one instance at a time.
type Locker interface {
	TryAcquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name, owner string) error
}

// DriftObserver receives the outcome of every reconciliation run.
type DriftObserver func(drift []domain.PointsDrift)

// Scheduler owns the cron runner and its registered jobs.
type Scheduler struct {
	cron       *cron.Cron
	reconcile  ports.ReconcileService
	locker     Locker
	observe    DriftObserver
	instanceID string
	log        zerolog.Logger
}

// New builds a Scheduler. locker and observe may be nil.
func New(reconcile ports.ReconcileService, locker Locker, observe DriftObserver, log zerolog.Logger) *Scheduler {
	instanceID, _ := os.Hostname()
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		reconcile:  reconcile,
		locker:     locker,
		observe:    observe,
		instanceID: instanceID,
		log:        log,
	}
}

// Start registers the reconciliation job on spec and starts the runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunReconciliation); err != nil {
		return fmt.Errorf("register %s job: %w", reconcileJob, err)
	}
	s.cron.Start()
	s.log.Info().Str("schedule", spec).Msg("scheduler started")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunReconciliation runs one reconciliation pass unless another instance holds the lock.
func (s *Scheduler) RunReconciliation() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	if s.locker != nil {
		acquired, err := s.locker.TryAcquire(ctx, reconcileJob, s.instanceID, reconcileTimeout)
		if err != nil {
			s.log.Error().Err(err).Str("job", reconcileJob).Msg("failed to acquire job lock")
			return
		}
		if !acquired {
			s.log.Debug().Str("job", reconcileJob).Msg("job already running on another instance, skipping")
			return
		}
		defer func() {
			if err := s.locker.Release(context.Background(), reconcileJob, s.instanceID); err != nil {
				s.log.Warn().Err(err).Str("job", reconcileJob).Msg("failed to release job lock")
			}
		}()
	}

	drift, err := s.reconcile.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("job", reconcileJob).Msg("job failed")
		return
	}
	if s.observe != nil {
		s.observe(drift)
	}
}
