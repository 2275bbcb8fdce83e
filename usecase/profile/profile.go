package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/repository"
)

// UseCase manages the two singleton records: user settings and user profile.
// Both are created lazily on first save and overwritten on every later save.
type UseCase struct {
	settings repository.SettingsRepository
	profiles repository.ProfileRepository
	logger   *zap.Logger
	now      func() time.Time
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

func New(settings repository.SettingsRepository, profiles repository.ProfileRepository, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		settings: settings,
		profiles: profiles,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Settings returns the stored settings, falling back to defaults when the
// user has never saved any.
func (uc *UseCase) Settings(ctx context.Context) (*domain.UserSettings, error) {
	settings, err := uc.settings.Get(ctx)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			defaults := domain.DefaultSettings()
			return &defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// SaveSettings validates and overwrites the settings record.
func (uc *UseCase) SaveSettings(ctx context.Context, settings *domain.UserSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return uc.settings.Put(ctx, settings)
}

// Profile returns the stored profile, or ErrProfileNotFound before first save.
func (uc *UseCase) Profile(ctx context.Context) (*domain.UserProfile, error) {
	return uc.profiles.Get(ctx)
}

// SaveInput carries the editable profile fields.
type SaveInput struct {
	Name      string
	Email     string
	Signature string
	Avatar    string
}

// SaveProfile creates the profile on first call and overwrites it afterwards,
// keeping the original id and creation time.
func (uc *UseCase) SaveProfile(ctx context.Context, input SaveInput) (*domain.UserProfile, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "profile name is required")
	}

	now := uc.now()
	profile := &domain.UserProfile{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Signature: input.Signature,
		Avatar:    input.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := uc.profiles.Get(ctx); err == nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}

	if err := uc.profiles.Put(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
