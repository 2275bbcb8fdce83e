package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridelog/backend/domain"
	boltstore "github.com/stridelog/backend/internal/infrastructure/bolt"
)

func openStore(t *testing.T) *boltstore.Store {
	t.Helper()
	store, err := boltstore.Open(filepath.Join(t.TempDir(), "stridelog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestChallengeRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewChallengeRepository(openStore(t))

	challenge := &domain.Challenge{
		ID:        "c1",
		Name:      "21 days of writing",
		StartDate: "2025-03-10",
		TotalDays: 21,
		Status:    domain.StatusActive,
		Tasks: []domain.Task{
			{ID: "t1", Name: "Write 500 words", Category: domain.CategoryLearning, Priority: domain.PriorityHigh, EstimatedDuration: 30},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Put(ctx, challenge))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, challenge.Name, got.Name)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Write 500 words", got.Tasks[0].Name)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	require.NoError(t, repo.Delete(ctx, "c1"))
	_, err = repo.GetByID(ctx, "c1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	err = repo.Delete(ctx, "c1")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestChallengeRepositoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewChallengeRepository(openStore(t))

	older := &domain.Challenge{ID: "a", Name: "older", StartDate: "2025-01-01", TotalDays: 7, CreatedAt: time.Now().Add(-time.Hour)}
	newer := &domain.Challenge{ID: "b", Name: "newer", StartDate: "2025-02-01", TotalDays: 7, CreatedAt: time.Now()}
	require.NoError(t, repo.Put(ctx, older))
	require.NoError(t, repo.Put(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, "older", list[1].Name)
}

func TestProgressRepositoryUpsertAndCascade(t *testing.T) {
	ctx := context.Background()
	repo := NewProgressRepository(openStore(t))

	first := &domain.DailyProgress{ID: "p1", ChallengeID: "c1", Date: "2025-03-10", Day: 1, CompletionPercentage: 50, Mood: 3}
	require.NoError(t, repo.Put(ctx, first))

	// Same (challenge, date) overwrites.
	second := &domain.DailyProgress{ID: "p2", ChallengeID: "c1", Date: "2025-03-10", Day: 1, CompletionPercentage: 100, Mood: 5}
	require.NoError(t, repo.Put(ctx, second))

	got, err := repo.GetByDay(ctx, "c1", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "p2", got.ID)
	assert.Equal(t, 100, got.CompletionPercentage)

	require.NoError(t, repo.Put(ctx, &domain.DailyProgress{ID: "p3", ChallengeID: "c1", Date: "2025-03-11", Day: 2, Mood: 4}))
	require.NoError(t, repo.Put(ctx, &domain.DailyProgress{ID: "p4", ChallengeID: "c2", Date: "2025-03-11", Day: 5, Mood: 2}))

	mine, err := repo.ListByChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, "2025-03-10", mine[0].Date)

	require.NoError(t, repo.DeleteByChallenge(ctx, "c1"))
	mine, err = repo.ListByChallenge(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	// Unrelated challenge untouched.
	others, err := repo.ListByChallenge(ctx, "c2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestReflectionRepositoryPerDayOverwrite(t *testing.T) {
	ctx := context.Background()
	repo := NewReflectionRepository(openStore(t))

	require.NoError(t, repo.Put(ctx, &domain.VideoReflection{ID: "r1", ChallengeID: "c1", Day: 3, Date: "2025-03-12", Duration: 60, Mood: 4}))
	require.NoError(t, repo.Put(ctx, &domain.VideoReflection{ID: "r2", ChallengeID: "c1", Day: 3, Date: "2025-03-12", Duration: 90, Mood: 5}))
	require.NoError(t, repo.Put(ctx, &domain.VideoReflection{ID: "r3", ChallengeID: "c1", Day: 10, Date: "2025-03-19", Duration: 45, Mood: 3}))

	list, err := repo.ListByChallenge(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ID)
	assert.Equal(t, 3, list[0].Day)
	assert.Equal(t, 10, list[1].Day)
}

func TestSettingsAndProfileSingletons(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	settingsRepo := NewSettingsRepository(store)
	profileRepo := NewProfileRepository(store)

	_, err := settingsRepo.Get(ctx)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	settings := domain.DefaultSettings()
	settings.Theme = "dark"
	require.NoError(t, settingsRepo.Put(ctx, &settings))

	got, err := settingsRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)

	profile := &domain.UserProfile{ID: "u1", Name: "Dana", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, profileRepo.Put(ctx, profile))

	// Overwrite keeps it a singleton.
	profile.Name = "Dana R."
	require.NoError(t, profileRepo.Put(ctx, profile))
	gotProfile, err := profileRepo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Dana R.", gotProfile.Name)
}
