package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/internal/testutil"
)

var testNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) (*UseCase, *testutil.MemoryStore) {
	t.Helper()
	store := testutil.NewMemoryStore()
	uc := New(
		store.ChallengeRepo(),
		store.ProgressRepo(),
		store.ReflectionRepo(),
		zap.NewNop(),
		WithClock(func() time.Time { return testNow }),
	)
	return uc, store
}

func validInput() CreateInput {
	return CreateInput{
		Name:      "Morning routine",
		StartDate: "2025-03-15",
		TotalDays: 21,
		Rules:     []string{"No snooze", "Cold shower"},
		Tasks: []domain.Task{
			{Name: "Meditate", Category: domain.CategoryHealth, Time: "07:00", Priority: domain.PriorityHigh, EstimatedDuration: 15},
		},
		Color: "#4f46e5",
		Icon:  "sunrise",
	}
}

func TestCreateStartsToday(t *testing.T) {
	uc, _ := newFixture(t)

	created, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.CurrentDay)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.NotEmpty(t, created.Tasks[0].ID)
	assert.Equal(t, testNow, created.CreatedAt)
}

func TestCreateFutureStartIsDraftRegardlessOfRequest(t *testing.T) {
	uc, _ := newFixture(t)

	input := validInput()
	input.StartDate = "2025-03-18"
	input.Status = domain.StatusActive

	created, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, created.Status)
	assert.Equal(t, 1, created.CurrentDay)
}

func TestCreateHonorsExplicitDraft(t *testing.T) {
	uc, _ := newFixture(t)

	input := validInput()
	input.Status = domain.StatusDraft

	created, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, created.Status)
}

func TestCreateElapsedRangeCompletes(t *testing.T) {
	uc, _ := newFixture(t)

	input := validInput()
	input.StartDate = "2025-02-18" // 25 days before testNow
	created, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, created.Status)
	assert.Equal(t, 26, created.CurrentDay)
}

func TestCreateValidation(t *testing.T) {
	uc, _ := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing name", func(in *CreateInput) { in.Name = " " }},
		{"zero totalDays", func(in *CreateInput) { in.TotalDays = 0 }},
		{"negative totalDays", func(in *CreateInput) { in.TotalDays = -3 }},
		{"malformed date", func(in *CreateInput) { in.StartDate = "March 15" }},
		{"bad task time", func(in *CreateInput) { in.Tasks[0].Time = "7am" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)
			_, err := uc.Create(context.Background(), input)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestReconcileUpdatesDayAndStatus(t *testing.T) {
	uc, store := newFixture(t)

	input := validInput()
	input.StartDate = "2025-03-10"
	created, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 6, created.CurrentDay)

	// Simulate a stale stored record from five days ago.
	stale := store.Challenges[created.ID]
	stale.CurrentDay = 1
	store.Challenges[created.ID] = stale

	reconciled, err := uc.Reconcile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, reconciled.CurrentDay)
	assert.Equal(t, domain.StatusActive, reconciled.Status)
}

func TestReconcileIsIdempotent(t *testing.T) {
	uc, store := newFixture(t)

	created, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Reconcile(context.Background(), created.ID)
	require.NoError(t, err)
	writes := store.PutCount

	// No time has passed: the second call must not write.
	_, err = uc.Reconcile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, writes, store.PutCount)
}

func TestReconcileLeavesPausedAlone(t *testing.T) {
	uc, _ := newFixture(t)

	input := validInput()
	input.StartDate = "2025-03-10"
	created, err := uc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = uc.Pause(context.Background(), created.ID)
	require.NoError(t, err)

	reconciled, err := uc.Reconcile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, reconciled.Status)
}

func TestReconcileElapsedWinsOverPaused(t *testing.T) {
	uc, _ := newFixture(t)

	input := validInput()
	input.StartDate = "2025-03-01"
	input.TotalDays = 10 // elapsed on 2025-03-11
	created, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, created.Status)

	// Force it back to paused and reconcile: elapsed must win.
	status := domain.StatusPaused
	_, err = uc.Update(context.Background(), created.ID, UpdateInput{Status: &status})
	require.NoError(t, err)

	reconciled, err := uc.Reconcile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, reconciled.Status)
}

func TestReconcileAllSkipsCompleted(t *testing.T) {
	uc, store := newFixture(t)

	input := validInput()
	input.StartDate = "2025-01-01"
	input.TotalDays = 5
	completed, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, completed.Status)

	active, err := uc.Create(context.Background(), validInput())
	require.NoError(t, err)

	before := store.Challenges[completed.ID].UpdatedAt
	require.NoError(t, uc.ReconcileAll(context.Background()))
	assert.Equal(t, before, store.Challenges[completed.ID].UpdatedAt)
	assert.Equal(t, domain.StatusActive, store.Challenges[active.ID].Status)
}

func TestSetActiveDemotesOthers(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	first, err := uc.Create(ctx, validInput())
	require.NoError(t, err)
	second, err := uc.Create(ctx, validInput())
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, store.Challenges[first.ID].Status)

	activated, err := uc.SetActive(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, activated.Status)
	assert.Equal(t, domain.StatusPaused, store.Challenges[first.ID].Status)

	activeCount := 0
	for _, c := range store.Challenges {
		if c.Status == domain.StatusActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestSetActiveMissingChallenge(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.SetActive(context.Background(), "nope")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestDeleteCascades(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validInput())
	require.NoError(t, err)
	other, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, store.ProgressRepo().Put(ctx, &domain.DailyProgress{ID: "p1", ChallengeID: created.ID, Date: "2025-03-15", Day: 1, Mood: 4}))
	require.NoError(t, store.ProgressRepo().Put(ctx, &domain.DailyProgress{ID: "p2", ChallengeID: other.ID, Date: "2025-03-15", Day: 1, Mood: 4}))
	require.NoError(t, store.ReflectionRepo().Put(ctx, &domain.VideoReflection{ID: "r1", ChallengeID: created.ID, Day: 1, Date: "2025-03-15", Mood: 4}))

	require.NoError(t, uc.Delete(ctx, created.ID))

	_, err = uc.Get(ctx, created.ID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))

	mine, err := store.ProgressRepo().ListByChallenge(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
	reflections, err := store.ReflectionRepo().ListByChallenge(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, reflections)

	// Unrelated records survive.
	theirs, err := store.ProgressRepo().ListByChallenge(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestDeleteMissingChallenge(t *testing.T) {
	uc, _ := newFixture(t)
	err := uc.Delete(context.Background(), "nope")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestUpdateMergesPartialFields(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	name := "Evening routine"
	updated, err := uc.Update(ctx, created.ID, UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Evening routine", updated.Name)
	assert.Equal(t, created.StartDate, updated.StartDate)
	assert.Equal(t, created.TotalDays, updated.TotalDays)
}

func TestTaskOperations(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	withTask, err := uc.AddTask(ctx, created.ID, domain.Task{
		Name:              "Read",
		Category:          domain.CategoryLearning,
		Time:              "21:00",
		Priority:          domain.PriorityLow,
		EstimatedDuration: 20,
	})
	require.NoError(t, err)
	require.Len(t, withTask.Tasks, 2)
	taskID := withTask.Tasks[1].ID
	require.NotEmpty(t, taskID)

	name := "Read fiction"
	updated, err := uc.UpdateTask(ctx, created.ID, taskID, TaskUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Read fiction", updated.Task(taskID).Name)

	afterDelete, err := uc.DeleteTask(ctx, created.ID, taskID)
	require.NoError(t, err)
	assert.Len(t, afterDelete.Tasks, 1)

	_, err = uc.DeleteTask(ctx, created.ID, taskID)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestStorageFailureLeavesStateUnchanged(t *testing.T) {
	uc, store := newFixture(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, validInput())
	require.NoError(t, err)

	store.FailNextPut = domain.StorageError("put challenge", assert.AnError)
	name := "changed"
	_, err = uc.Update(ctx, created.ID, UpdateInput{Name: &name})
	require.Error(t, err)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning routine", got.Name)
}
