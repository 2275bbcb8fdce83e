package challenge

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/repository"
)

// UseCase is the challenge lifecycle manager. It mediates between stored
// challenge state and resolver output, and serializes user-driven transitions.
type UseCase struct {
	challenges  repository.ChallengeRepository
	progress    repository.ProgressRepository
	reflections repository.ReflectionRepository
	logger      *zap.Logger
	now         func() time.Time
}

// Option customizes a UseCase.
type Option func(*UseCase)

// WithClock overrides the wall clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) {
		if now != nil {
			uc.now = now
		}
	}
}

func New(
	challenges repository.ChallengeRepository,
	progress repository.ProgressRepository,
	reflections repository.ReflectionRepository,
	logger *zap.Logger,
	opts ...Option,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		challenges:  challenges,
		progress:    progress,
		reflections: reflections,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateInput carries the caller-supplied fields of a new challenge.
type CreateInput struct {
	Name        string
	Description string
	StartDate   string
	TotalDays   int
	Status      domain.Status
	Rules       []string
	Tasks       []domain.Task
	Color       string
	Icon        string
}

// Create assigns identity and timestamps, resolves the initial day and status
// from the start date, and persists the new challenge. A future start date
// yields draft no matter what the caller asked for; a started challenge is
// active unless draft was explicitly requested; an already-elapsed date range
// is completed on arrival.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*domain.Challenge, error) {
	now := uc.now()
	challenge := &domain.Challenge{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		StartDate:   input.StartDate,
		TotalDays:   input.TotalDays,
		Rules:       input.Rules,
		Tasks:       input.Tasks,
		Color:       input.Color,
		Icon:        input.Icon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range challenge.Tasks {
		if challenge.Tasks[i].ID == "" {
			challenge.Tasks[i].ID = uuid.NewString()
		}
	}
	if err := challenge.Validate(); err != nil {
		return nil, err
	}

	day, err := domain.CurrentDay(challenge.StartDate, now)
	if err != nil {
		return nil, err
	}
	switch {
	case day < 1:
		challenge.Status = domain.StatusDraft
	case day > challenge.TotalDays:
		challenge.Status = domain.StatusCompleted
	case input.Status == domain.StatusDraft:
		challenge.Status = domain.StatusDraft
	default:
		challenge.Status = domain.StatusActive
	}
	challenge.CurrentDay = domain.ClampDay(day)

	if err := uc.challenges.Put(ctx, challenge); err != nil {
		return nil, err
	}
	uc.logger.Info("challenge created",
		zap.String("challenge_id", challenge.ID),
		zap.String("status", string(challenge.Status)))
	return challenge, nil
}

// UpdateInput merges into an existing challenge; nil fields are left alone.
type UpdateInput struct {
	Name        *string
	Description *string
	StartDate   *string
	TotalDays   *int
	Status      *domain.Status
	Rules       *[]string
	Color       *string
	Icon        *string
}

// Update merges the patch, refreshes updatedAt and persists. It does not run
// the resolver; callers that changed the date range follow up with Reconcile.
func (uc *UseCase) Update(ctx context.Context, id string, patch UpdateInput) (*domain.Challenge, error) {
	challenge, err := uc.challenges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		challenge.Name = *patch.Name
	}
	if patch.Description != nil {
		challenge.Description = *patch.Description
	}
	if patch.StartDate != nil {
		challenge.StartDate = *patch.StartDate
	}
	if patch.TotalDays != nil {
		challenge.TotalDays = *patch.TotalDays
	}
	if patch.Status != nil {
		challenge.Status = *patch.Status
	}
	if patch.Rules != nil {
		challenge.Rules = *patch.Rules
	}
	if patch.Color != nil {
		challenge.Color = *patch.Color
	}
	if patch.Icon != nil {
		challenge.Icon = *patch.Icon
	}
	if err := challenge.Validate(); err != nil {
		return nil, err
	}
	challenge.UpdatedAt = uc.now()

	if err := uc.challenges.Put(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Get returns one challenge by id.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Challenge, error) {
	return uc.challenges.GetByID(ctx, id)
}

// List returns all challenges, newest first.
func (uc *UseCase) List(ctx context.Context) ([]domain.Challenge, error) {
	return uc.challenges.List(ctx)
}

// Active returns the challenge currently marked active, or nil.
func (uc *UseCase) Active(ctx context.Context) (*domain.Challenge, error) {
	challenges, err := uc.challenges.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range challenges {
		if challenges[i].Status == domain.StatusActive {
			return &challenges[i], nil
		}
	}
	return nil, nil
}

// Reconcile recomputes day and status from the wall clock and writes back only
// when something actually changed, so repeated calls within the same day are
// no-ops. Persisted day/status are treated as a cache, never as ground truth.
func (uc *UseCase) Reconcile(ctx context.Context, id string) (*domain.Challenge, error) {
	challenge, err := uc.challenges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	day, status, err := domain.Resolve(challenge, uc.now())
	if err != nil {
		return nil, err
	}
	clamped := domain.ClampDay(day)
	if clamped == challenge.CurrentDay && status == challenge.Status {
		return challenge, nil
	}

	challenge.CurrentDay = clamped
	challenge.Status = status
	challenge.UpdatedAt = uc.now()
	if err := uc.challenges.Put(ctx, challenge); err != nil {
		return nil, err
	}
	uc.logger.Debug("challenge reconciled",
		zap.String("challenge_id", id),
		zap.Int("day", clamped),
		zap.String("status", string(status)))
	return challenge, nil
}

// ReconcileAll sweeps every challenge that is not already completed. A failing
// challenge is logged and skipped; the sweep never aborts early.
func (uc *UseCase) ReconcileAll(ctx context.Context) error {
	challenges, err := uc.challenges.List(ctx)
	if err != nil {
		return err
	}
	for i := range challenges {
		if challenges[i].IsFinished() {
			continue
		}
		if _, err := uc.Reconcile(ctx, challenges[i].ID); err != nil {
			uc.logger.Error("reconcile failed",
				zap.String("challenge_id", challenges[i].ID),
				zap.Error(err))
		}
	}
	return nil
}

// SetActive marks one challenge active, demoting every other active challenge
// to paused first. At most one challenge is active at any time; that invariant
// is enforced here, not by the storage layer.
func (uc *UseCase) SetActive(ctx context.Context, id string) (*domain.Challenge, error) {
	target, err := uc.challenges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	challenges, err := uc.challenges.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range challenges {
		other := &challenges[i]
		if other.ID == id || other.Status != domain.StatusActive {
			continue
		}
		other.Status = domain.StatusPaused
		other.UpdatedAt = uc.now()
		if err := uc.challenges.Put(ctx, other); err != nil {
			return nil, err
		}
		uc.logger.Info("challenge paused", zap.String("challenge_id", other.ID))
	}

	target.Status = domain.StatusActive
	target.UpdatedAt = uc.now()
	if err := uc.challenges.Put(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// Pause is the explicit user override; reconciliation will leave it alone
// until the user resumes or the day range elapses.
func (uc *UseCase) Pause(ctx context.Context, id string) (*domain.Challenge, error) {
	status := domain.StatusPaused
	return uc.Update(ctx, id, UpdateInput{Status: &status})
}

// Delete removes the challenge and cascades to its progress and reflection
// records. Tasks live inside the challenge record and go with it.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.challenges.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.progress.DeleteByChallenge(ctx, id); err != nil {
		return err
	}
	return uc.reflections.DeleteByChallenge(ctx, id)
}

// AddTask appends a task to a challenge, assigning it an id.
func (uc *UseCase) AddTask(ctx context.Context, challengeID string, task domain.Task) (*domain.Challenge, error) {
	challenge, err := uc.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	task.ID = uuid.NewString()
	if err := task.Validate(); err != nil {
		return nil, err
	}
	challenge.Tasks = append(challenge.Tasks, task)
	challenge.UpdatedAt = uc.now()
	if err := uc.challenges.Put(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// TaskUpdate merges into an existing task; nil fields are left alone.
type TaskUpdate struct {
	Name              *string
	Category          *domain.TaskCategory
	Time              *string
	Description       *string
	Priority          *domain.TaskPriority
	EstimatedDuration *int
	Completed         *bool
}

// UpdateTask merges a patch into one of the challenge's tasks.
func (uc *UseCase) UpdateTask(ctx context.Context, challengeID, taskID string, patch TaskUpdate) (*domain.Challenge, error) {
	challenge, err := uc.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	task := challenge.Task(taskID)
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	if patch.Name != nil {
		task.Name = *patch.Name
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	if patch.Time != nil {
		task.Time = *patch.Time
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.EstimatedDuration != nil {
		task.EstimatedDuration = *patch.EstimatedDuration
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}

	challenge.UpdatedAt = uc.now()
	if err := uc.challenges.Put(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// DeleteTask removes a task from its challenge.
func (uc *UseCase) DeleteTask(ctx context.Context, challengeID, taskID string) (*domain.Challenge, error) {
	challenge, err := uc.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	kept := challenge.Tasks[:0]
	found := false
	for _, task := range challenge.Tasks {
		if task.ID == taskID {
			found = true
			continue
		}
		kept = append(kept, task)
	}
	if !found {
		return nil, domain.ErrTaskNotFound
	}
	challenge.Tasks = kept
	challenge.UpdatedAt = uc.now()
	if err := uc.challenges.Put(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}
