// Package testutil provides in-memory repository implementations for tests.
package testutil

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/repository"
)

// MemoryStore bundles in-memory implementations of every repository interface.
// FailNextPut lets tests simulate a storage error on the next write.
type MemoryStore struct {
	Challenges  map[string]domain.Challenge
	Progress    map[string]domain.DailyProgress
	Reflections map[string]domain.VideoReflection
	Settings    *domain.UserSettings
	Profile     *domain.UserProfile

	FailNextPut error
	PutCount    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Challenges:  make(map[string]domain.Challenge),
		Progress:    make(map[string]domain.DailyProgress),
		Reflections: make(map[string]domain.VideoReflection),
	}
}

func (m *MemoryStore) takePutError() error {
	err := m.FailNextPut
	m.FailNextPut = nil
	return err
}

// ChallengeRepo returns the store viewed as a ChallengeRepository.
func (m *MemoryStore) ChallengeRepo() repository.ChallengeRepository { return (*challengeRepo)(m) }

// ProgressRepo returns the store viewed as a ProgressRepository.
func (m *MemoryStore) ProgressRepo() repository.ProgressRepository { return (*progressRepo)(m) }

// ReflectionRepo returns the store viewed as a ReflectionRepository.
func (m *MemoryStore) ReflectionRepo() repository.ReflectionRepository { return (*reflectionRepo)(m) }

// SettingsRepo returns the store viewed as a SettingsRepository.
func (m *MemoryStore) SettingsRepo() repository.SettingsRepository { return (*settingsRepo)(m) }

// ProfileRepo returns the store viewed as a ProfileRepository.
func (m *MemoryStore) ProfileRepo() repository.ProfileRepository { return (*profileRepo)(m) }

type challengeRepo MemoryStore

func (r *challengeRepo) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	c, ok := r.Challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	copied := c
	return &copied, nil
}

func (r *challengeRepo) List(ctx context.Context) ([]domain.Challenge, error) {
	out := make([]domain.Challenge, 0, len(r.Challenges))
	for _, c := range r.Challenges {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *challengeRepo) Put(ctx context.Context, challenge *domain.Challenge) error {
	if err := (*MemoryStore)(r).takePutError(); err != nil {
		return err
	}
	r.PutCount++
	r.Challenges[challenge.ID] = *challenge
	return nil
}

func (r *challengeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.Challenges[id]; !ok {
		return domain.ErrChallengeNotFound
	}
	delete(r.Challenges, id)
	return nil
}

func (r *challengeRepo) DeleteAll(ctx context.Context) error {
	r.Challenges = make(map[string]domain.Challenge)
	return nil
}

type progressRepo MemoryStore

func progressKey(challengeID, date string) string { return challengeID + "/" + date }

func (r *progressRepo) GetByDay(ctx context.Context, challengeID, date string) (*domain.DailyProgress, error) {
	p, ok := r.Progress[progressKey(challengeID, date)]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	copied := p
	return &copied, nil
}

func (r *progressRepo) ListByChallenge(ctx context.Context, challengeID string) ([]domain.DailyProgress, error) {
	var out []domain.DailyProgress
	for key, p := range r.Progress {
		if strings.HasPrefix(key, challengeID+"/") {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *progressRepo) List(ctx context.Context) ([]domain.DailyProgress, error) {
	var out []domain.DailyProgress
	for _, p := range r.Progress {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *progressRepo) Put(ctx context.Context, progress *domain.DailyProgress) error {
	if err := (*MemoryStore)(r).takePutError(); err != nil {
		return err
	}
	r.Progress[progressKey(progress.ChallengeID, progress.Date)] = *progress
	return nil
}

func (r *progressRepo) DeleteByChallenge(ctx context.Context, challengeID string) error {
	for key := range r.Progress {
		if strings.HasPrefix(key, challengeID+"/") {
			delete(r.Progress, key)
		}
	}
	return nil
}

func (r *progressRepo) DeleteAll(ctx context.Context) error {
	r.Progress = make(map[string]domain.DailyProgress)
	return nil
}

type reflectionRepo MemoryStore

func (r *reflectionRepo) ListByChallenge(ctx context.Context, challengeID string) ([]domain.VideoReflection, error) {
	var out []domain.VideoReflection
	for key, v := range r.Reflections {
		if strings.HasPrefix(key, challengeID+"/") {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func (r *reflectionRepo) List(ctx context.Context) ([]domain.VideoReflection, error) {
	var out []domain.VideoReflection
	for _, v := range r.Reflections {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChallengeID != out[j].ChallengeID {
			return out[i].ChallengeID < out[j].ChallengeID
		}
		return out[i].Day < out[j].Day
	})
	return out, nil
}

func (r *reflectionRepo) Put(ctx context.Context, reflection *domain.VideoReflection) error {
	if err := (*MemoryStore)(r).takePutError(); err != nil {
		return err
	}
	key := reflection.ChallengeID + "/" + strconv.Itoa(reflection.Day)
	r.Reflections[key] = *reflection
	return nil
}

func (r *reflectionRepo) DeleteByChallenge(ctx context.Context, challengeID string) error {
	for key := range r.Reflections {
		if strings.HasPrefix(key, challengeID+"/") {
			delete(r.Reflections, key)
		}
	}
	return nil
}

func (r *reflectionRepo) DeleteAll(ctx context.Context) error {
	r.Reflections = make(map[string]domain.VideoReflection)
	return nil
}

type settingsRepo MemoryStore

func (r *settingsRepo) Get(ctx context.Context) (*domain.UserSettings, error) {
	if r.Settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	copied := *r.Settings
	return &copied, nil
}

func (r *settingsRepo) Put(ctx context.Context, settings *domain.UserSettings) error {
	if err := (*MemoryStore)(r).takePutError(); err != nil {
		return err
	}
	copied := *settings
	r.Settings = &copied
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context) error {
	r.Settings = nil
	return nil
}

type profileRepo MemoryStore

func (r *profileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	if r.Profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	copied := *r.Profile
	return &copied, nil
}

func (r *profileRepo) Put(ctx context.Context, profile *domain.UserProfile) error {
	if err := (*MemoryStore)(r).takePutError(); err != nil {
		return err
	}
	copied := *profile
	r.Profile = &copied
	return nil
}

func (r *profileRepo) Delete(ctx context.Context) error {
	r.Profile = nil
	return nil
}
