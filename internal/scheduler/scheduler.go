// Package scheduler runs the periodic consistency sweep: reload the cache,
// repair applicant counters and replay spooled audit entries.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultSpec runs the sweep every fifteen minutes.
const DefaultSpec = "@every 15m"

// SystemActor is the acting identity recorded on sweep writes.
const SystemActor = "system"

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Reconciler interface {
	ReconcileApplicantCounts(ctx context.Context, actorID string) (int, error)
}

type Replayer interface {
	Replay(ctx context.Context) (int, error)
}

// Service is what the sweep needs from the domain service.
type Service interface {
	Refresher
	Reconciler
}

// Scheduler wraps robfig/cron around one sweep job.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	svc     Service
	replay  Replayer
	log     *zap.Logger
	timeout time.Duration
}

// New creates a Scheduler. replay may be nil when no audit spool is wired.
func New(spec string, svc Service, replay Replayer, log *zap.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec:    spec,
		svc:     svc,
		replay:  replay,
		log:     log.Named("scheduler"),
		timeout: 2 * time.Minute,
	}
}

// Start registers the sweep and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info("cron started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron stopped")
}

// SweepResult summarizes one sweep.
type SweepResult struct {
	CountersFixed  int
	AuditsReplayed int
}

// Sweep runs one pass. Each step runs even when an earlier one failed, except
// that a failed reload skips reconciliation so stale data never overwrites
// counters.
func (s *Scheduler) Sweep(ctx context.Context) SweepResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var res SweepResult
	if err := s.svc.Refresh(ctx); err != nil {
		s.log.Warn("reload failed, skipping reconciliation", zap.Error(err))
	} else {
		fixed, err := s.svc.ReconcileApplicantCounts(ctx, SystemActor)
		if err != nil {
			s.log.Warn("reconciliation incomplete", zap.Error(err))
		}
		res.CountersFixed = fixed
	}

	if s.replay != nil {
		n, err := s.replay.Replay(ctx)
		if err != nil {
			s.log.Warn("audit replay stopped", zap.Error(err))
		}
		res.AuditsReplayed = n
	}

	s.log.Info("sweep complete",
		zap.Int("counters_fixed", res.CountersFixed),
		zap.Int("audits_replayed", res.AuditsReplayed),
	)
	return res
}
