package bolt

import (
	"context"
	"errors"

	"github.com/stridelog/backend/domain"
	boltstore "github.com/stridelog/backend/internal/infrastructure/bolt"
	"github.com/stridelog/backend/repository"
)

// Singleton records live under fixed keys; the accessors below keep the
// one-or-none invariant out of callers' hands.
const singletonKey = "default"

type settingsRepository struct {
	store *boltstore.Store
}

// NewSettingsRepository returns the Bolt-backed singleton settings store.
func NewSettingsRepository(store *boltstore.Store) repository.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.UserSettings, error) {
	var settings domain.UserSettings
	if err := r.store.Get(boltstore.BucketSettings, singletonKey, &settings); err != nil {
		if errors.Is(err, boltstore.ErrKeyNotFound) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, domain.StorageError("get settings", err)
	}
	return &settings, nil
}

func (r *settingsRepository) Put(ctx context.Context, settings *domain.UserSettings) error {
	if settings == nil {
		return domain.ErrInvalidPayload
	}
	if err := r.store.Put(boltstore.BucketSettings, singletonKey, settings); err != nil {
		return domain.StorageError("put settings", err)
	}
	return nil
}

func (r *settingsRepository) Delete(ctx context.Context) error {
	if err := r.store.Delete(boltstore.BucketSettings, singletonKey); err != nil {
		return domain.StorageError("delete settings", err)
	}
	return nil
}

type profileRepository struct {
	store *boltstore.Store
}

// NewProfileRepository returns the Bolt-backed singleton profile store.
func NewProfileRepository(store *boltstore.Store) repository.ProfileRepository {
	return &profileRepository{store: store}
}

func (r *profileRepository) Get(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := r.store.Get(boltstore.BucketProfile, singletonKey, &profile); err != nil {
		if errors.Is(err, boltstore.ErrKeyNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, domain.StorageError("get profile", err)
	}
	return &profile, nil
}

func (r *profileRepository) Put(ctx context.Context, profile *domain.UserProfile) error {
	if profile == nil {
		return domain.ErrInvalidPayload
	}
	if err := r.store.Put(boltstore.BucketProfile, singletonKey, profile); err != nil {
		return domain.StorageError("put profile", err)
	}
	return nil
}

func (r *profileRepository) Delete(ctx context.Context) error {
	if err := r.store.Delete(boltstore.BucketProfile, singletonKey); err != nil {
		return domain.StorageError("delete profile", err)
	}
	return nil
}
