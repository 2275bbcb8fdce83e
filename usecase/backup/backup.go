package backup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/repository"
)

// FormatVersion is stamped into every export document.
const FormatVersion = "1.0.0"

// Document is the full-dataset export format. Field names are part of the
// wire contract; files written by earlier releases import unchanged.
type Document struct {
	Challenges       []domain.Challenge       `json:"challenges"`
	DailyProgress    []domain.DailyProgress   `json:"dailyProgress"`
	VideoReflections []domain.VideoReflection `json:"videoReflections"`
	UserSettings     *domain.UserSettings     `json:"userSettings,omitempty"`
	UserProfile      *domain.UserProfile      `json:"userProfile,omitempty"`
	ExportDate       time.Time                `json:"exportDate"`
	Version          string                   `json:"version"`
}

// UseCase exports and imports the whole dataset.
type UseCase struct {
	challenges  repository.ChallengeRepository
	progress    repository.ProgressRepository
	reflections repository.ReflectionRepository
	settings    repository.SettingsRepository
	profiles    repository.ProfileRepository
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
	settings repository.SettingsRepository,
	profiles repository.ProfileRepository,
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
		settings:    settings,
		profiles:    profiles,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Export collects every stored record into one document.
func (uc *UseCase) Export(ctx context.Context) (*Document, error) {
	challenges, err := uc.challenges.List(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := uc.progress.List(ctx)
	if err != nil {
		return nil, err
	}
	reflections, err := uc.reflections.List(ctx)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Challenges:       challenges,
		DailyProgress:    progress,
		VideoReflections: reflections,
		ExportDate:       uc.now(),
		Version:          FormatVersion,
	}

	if settings, err := uc.settings.Get(ctx); err == nil {
		doc.UserSettings = settings
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}
	if profile, err := uc.profiles.Get(ctx); err == nil {
		doc.UserProfile = profile
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}
	return doc, nil
}

// Import replaces all stored records of each entity type present in the
// document. Replacement is a full overwrite of that type, not a merge;
// absent sections leave the corresponding records untouched.
func (uc *UseCase) Import(ctx context.Context, doc *Document) error {
	if doc == nil {
		return domain.ErrInvalidPayload
	}

	if doc.Challenges != nil {
		if err := uc.challenges.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range doc.Challenges {
			if err := uc.challenges.Put(ctx, &doc.Challenges[i]); err != nil {
				return err
			}
		}
	}
	if doc.DailyProgress != nil {
		if err := uc.progress.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range doc.DailyProgress {
			if err := uc.progress.Put(ctx, &doc.DailyProgress[i]); err != nil {
				return err
			}
		}
	}
	if doc.VideoReflections != nil {
		if err := uc.reflections.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range doc.VideoReflections {
			if err := uc.reflections.Put(ctx, &doc.VideoReflections[i]); err != nil {
				return err
			}
		}
	}
	if doc.UserSettings != nil {
		if err := uc.settings.Put(ctx, doc.UserSettings); err != nil {
			return err
		}
	}
	if doc.UserProfile != nil {
		if err := uc.profiles.Put(ctx, doc.UserProfile); err != nil {
			return err
		}
	}

	uc.logger.Info("data imported",
		zap.Int("challenges", len(doc.Challenges)),
		zap.Int("progress_records", len(doc.DailyProgress)),
		zap.Int("reflections", len(doc.VideoReflections)))
	return nil
}

// Clear wipes every stored record of every type.
func (uc *UseCase) Clear(ctx context.Context) error {
	if err := uc.challenges.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.progress.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.reflections.DeleteAll(ctx); err != nil {
		return err
	}
	if err := uc.settings.Delete(ctx); err != nil {
		return err
	}
	return uc.profiles.Delete(ctx)
}
