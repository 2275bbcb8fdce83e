package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper recomputes day and status for every stored challenge.
type Sweeper interface {
	ReconcileAll(ctx context.Context) error
}

// SweepRecorder receives the completion time of each sweep.
type SweepRecorder interface {
	RecordSweep(at time.Time)
}

// ReconcilerConfig controls how often the lifecycle sweep runs.
type ReconcilerConfig struct {
	Interval time.Duration
	OnBoot   bool
}

// Reconciler periodically sweeps all challenges so that persisted day and
// status catch up with the calendar even when no request arrives for days.
type Reconciler struct {
	sweeper  Sweeper
	recorder SweepRecorder
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      ReconcilerConfig

	mu      sync.RWMutex
	lastRun time.Time
}

func NewReconciler(sweeper Sweeper, recorder SweepRecorder, logger *zap.Logger, cfg ReconcilerConfig) *Reconciler {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reconciler{
		sweeper:  sweeper,
		recorder: recorder,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("lifecycle sweep failed", zap.Error(err))
		}
	})

	return r
}

// Start launches the cron scheduler, sweeping once immediately when the
// configuration asks for a boot sweep. The boot sweep is what heals state
// after the process has been down across one or more midnights.
func (r *Reconciler) Start() {
	if r == nil || r.cron == nil {
		return
	}
	if r.cfg.OnBoot {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.RunOnce(ctx); err != nil {
			r.logger.Error("boot sweep failed", zap.Error(err))
		}
	}
	r.cron.Start()
	r.logger.Info("reconciler started", zap.Duration("interval", r.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (r *Reconciler) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("reconciler stopped")
}

// RunOnce performs one synchronous sweep. It also backs the wake endpoint,
// which clients call after the host machine resumes from sleep.
func (r *Reconciler) RunOnce(ctx context.Context) error {
	if r == nil || r.sweeper == nil {
		return nil
	}
	if err := r.sweeper.ReconcileAll(ctx); err != nil {
		return err
	}

	now := time.Now()
	r.mu.Lock()
	r.lastRun = now
	r.mu.Unlock()
	if r.recorder != nil {
		r.recorder.RecordSweep(now)
	}
	return nil
}

// LastRun returns when the last successful sweep finished, zero before the first.
func (r *Reconciler) LastRun() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastRun
}
