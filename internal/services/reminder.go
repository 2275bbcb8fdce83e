package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/stridelog/backend/domain"
)

// SettingsSource yields the current user settings.
type SettingsSource interface {
	Settings(ctx context.Context) (*domain.UserSettings, error)
}

// ActiveSource yields the challenge currently marked active, or nil.
type ActiveSource interface {
	Active(ctx context.Context) (*domain.Challenge, error)
}

// Notifier delivers a reminder. The default implementation only logs; a real
// delivery channel plugs in here.
type Notifier interface {
	Notify(ctx context.Context, challenge *domain.Challenge, at string) error
}

type logNotifier struct {
	logger *zap.Logger
}

func (n *logNotifier) Notify(ctx context.Context, challenge *domain.Challenge, at string) error {
	n.logger.Info("reminder due",
		zap.String("challenge_id", challenge.ID),
		zap.String("challenge", challenge.Name),
		zap.Int("day", challenge.CurrentDay),
		zap.String("time", at))
	return nil
}

// Reminder fires at the times configured in user settings and nudges about
// the active challenge. Ticks are skipped while notifications are disabled
// or no challenge is active.
type Reminder struct {
	settings SettingsSource
	active   ActiveSource
	notifier Notifier
	logger   *zap.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	entries []cron.EntryID
}

func NewReminder(settings SettingsSource, active ActiveSource, notifier Notifier, logger *zap.Logger) *Reminder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = &logNotifier{logger: logger}
	}
	return &Reminder{
		settings: settings,
		active:   active,
		notifier: notifier,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start schedules the configured reminder times and launches the scheduler.
func (r *Reminder) Start(ctx context.Context) error {
	if err := r.Refresh(ctx); err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("reminder scheduler started")
	return nil
}

// Stop gracefully stops the scheduler.
func (r *Reminder) Stop(ctx context.Context) {
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("reminder scheduler stopped")
}

// Refresh rereads the settings and rebuilds the cron entries. Called on start
// and again whenever the user saves new reminder times.
func (r *Reminder) Refresh(ctx context.Context) error {
	settings, err := r.settings.Settings(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.entries {
		r.cron.Remove(id)
	}
	r.entries = r.entries[:0]

	if !settings.Notifications {
		r.logger.Debug("notifications disabled, no reminders scheduled")
		return nil
	}

	for _, at := range settings.ReminderTimes {
		spec, err := cronSpec(at)
		if err != nil {
			r.logger.Warn("skipping malformed reminder time", zap.String("time", at), zap.Error(err))
			continue
		}
		at := at
		id, err := r.cron.AddFunc(spec, func() { r.fire(at) })
		if err != nil {
			r.logger.Warn("failed to schedule reminder", zap.String("time", at), zap.Error(err))
			continue
		}
		r.entries = append(r.entries, id)
	}

	r.logger.Info("reminders scheduled", zap.Int("count", len(r.entries)))
	return nil
}

func (r *Reminder) fire(at string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	challenge, err := r.active.Active(ctx)
	if err != nil {
		r.logger.Warn("reminder lookup failed", zap.Error(err))
		return
	}
	if challenge == nil {
		return
	}
	if err := r.notifier.Notify(ctx, challenge, at); err != nil {
		r.logger.Warn("reminder delivery failed", zap.Error(err))
	}
}

// cronSpec converts an "HH:MM" wall clock time into a daily cron expression.
func cronSpec(at string) (string, error) {
	parts := strings.SplitN(at, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("expected HH:MM, got %q", at)
	}
	parsed, err := time.Parse("15:04", at)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d %d * * *", parsed.Minute(), parsed.Hour()), nil
}
