package progress

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/repository"
)

// DefaultStreakThreshold is the completion percentage from which a day counts
// toward a streak.
const DefaultStreakThreshold = 70

// UseCase records daily progress and video reflections and aggregates them
// into streak and completion analytics.
type UseCase struct {
	challenges  repository.ChallengeRepository
	progress    repository.ProgressRepository
	reflections repository.ReflectionRepository
	logger      *zap.Logger
	now         func() time.Time
	threshold   int
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

// WithStreakThreshold overrides the qualifying-day completion percentage.
func WithStreakThreshold(threshold int) Option {
	return func(uc *UseCase) {
		if threshold > 0 {
			uc.threshold = threshold
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
		threshold:   DefaultStreakThreshold,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RecordInput carries one day's completion log.
type RecordInput struct {
	ChallengeID    string
	CompletedTasks []string
	Notes          string
	Mood           int
}

// Record upserts today's progress for a challenge. The task-count snapshot and
// the completion percentage are computed here; recording the same day twice
// replaces the earlier entry. The challenge's cached day/status are refreshed
// afterwards so the record and the challenge agree on the day number.
func (uc *UseCase) Record(ctx context.Context, input RecordInput) (*domain.DailyProgress, error) {
	challenge, err := uc.challenges.GetByID(ctx, input.ChallengeID)
	if err != nil {
		return nil, err
	}

	mood := input.Mood
	if mood == 0 {
		mood = 3
	}
	if !domain.ValidMood(mood) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "mood must be between 1 and 5")
	}

	now := uc.now()
	day, err := domain.CurrentDay(challenge.StartDate, now)
	if err != nil {
		return nil, err
	}

	completed := dedupe(input.CompletedTasks)
	totalTasks := len(challenge.Tasks)
	percentage := 0
	if totalTasks > 0 {
		percentage = int(math.Round(float64(len(completed)) / float64(totalTasks) * 100))
	}

	entry := &domain.DailyProgress{
		ID:                   uuid.NewString(),
		ChallengeID:          challenge.ID,
		Date:                 now.Format(domain.DateLayout),
		Day:                  domain.ClampDay(day),
		CompletedTasks:       completed,
		TotalTasks:           totalTasks,
		CompletionPercentage: percentage,
		Notes:                input.Notes,
		Mood:                 mood,
	}
	if err := uc.progress.Put(ctx, entry); err != nil {
		return nil, err
	}

	if err := uc.reconcileChallenge(ctx, challenge, day); err != nil {
		uc.logger.Warn("day refresh after progress record failed",
			zap.String("challenge_id", challenge.ID), zap.Error(err))
	}
	return entry, nil
}

func (uc *UseCase) reconcileChallenge(ctx context.Context, challenge *domain.Challenge, day int) error {
	status := domain.ResolveStatus(day, challenge.TotalDays, challenge.Status)
	clamped := domain.ClampDay(day)
	if clamped == challenge.CurrentDay && status == challenge.Status {
		return nil
	}
	challenge.CurrentDay = clamped
	challenge.Status = status
	challenge.UpdatedAt = uc.now()
	return uc.challenges.Put(ctx, challenge)
}

// Today returns today's progress record for a challenge, or NotFound.
func (uc *UseCase) Today(ctx context.Context, challengeID string) (*domain.DailyProgress, error) {
	return uc.progress.GetByDay(ctx, challengeID, uc.now().Format(domain.DateLayout))
}

// History returns all progress records for a challenge in date order.
func (uc *UseCase) History(ctx context.Context, challengeID string) ([]domain.DailyProgress, error) {
	if _, err := uc.challenges.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return uc.progress.ListByChallenge(ctx, challengeID)
}

// ReflectionInput carries one recorded reflection.
type ReflectionInput struct {
	ChallengeID string
	Duration    int
	Questions   []domain.ReflectionQuestion
	Notes       string
	Mood        int
}

// AddReflection stores the reflection for the challenge's current day,
// replacing any earlier reflection recorded for that day.
func (uc *UseCase) AddReflection(ctx context.Context, input ReflectionInput) (*domain.VideoReflection, error) {
	challenge, err := uc.challenges.GetByID(ctx, input.ChallengeID)
	if err != nil {
		return nil, err
	}
	if !domain.ValidMood(input.Mood) {
		return nil, domain.NewError(domain.ErrCodeInvalid, "mood must be between 1 and 5")
	}

	now := uc.now()
	day, err := domain.CurrentDay(challenge.StartDate, now)
	if err != nil {
		return nil, err
	}

	questions := input.Questions
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
	}

	reflection := &domain.VideoReflection{
		ID:          uuid.NewString(),
		ChallengeID: challenge.ID,
		Day:         domain.ClampDay(day),
		Date:        now.Format(domain.DateLayout),
		Duration:    input.Duration,
		Questions:   questions,
		Notes:       input.Notes,
		Mood:        input.Mood,
	}
	if err := uc.reflections.Put(ctx, reflection); err != nil {
		return nil, err
	}
	return reflection, nil
}

// Reflections returns all reflections for a challenge in day order.
func (uc *UseCase) Reflections(ctx context.Context, challengeID string) ([]domain.VideoReflection, error) {
	if _, err := uc.challenges.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}
	return uc.reflections.ListByChallenge(ctx, challengeID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
