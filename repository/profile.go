package repository

import (
	"context"

	"github.com/stridelog/backend/domain"
)

// SettingsRepository stores the single user-settings record. Get returns
// domain.ErrSettingsNotFound until the first save; the one-or-none invariant
// is part of the contract, not the caller's problem.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.UserSettings, error)
	Put(ctx context.Context, settings *domain.UserSettings) error
	Delete(ctx context.Context) error
}

// ProfileRepository stores the single user-profile record.
type ProfileRepository interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Put(ctx context.Context, profile *domain.UserProfile) error
	Delete(ctx context.Context) error
}
