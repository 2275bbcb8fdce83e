package profile

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

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) (*UseCase, *testutil.MemoryStore) {
	t.Helper()
	store := testutil.NewMemoryStore()
	uc := New(store.SettingsRepo(), store.ProfileRepo(), zap.NewNop(),
		WithClock(func() time.Time { return testNow }))
	return uc, store
}

func TestSettingsDefaultsBeforeFirstSave(t *testing.T) {
	uc, _ := newFixture(t)

	settings, err := uc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "light", settings.Theme)
	assert.True(t, settings.Notifications)
	assert.Equal(t, []string{"09:00", "18:00"}, settings.ReminderTimes)
}

func TestSaveSettingsOverwrites(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	settings := domain.DefaultSettings()
	settings.Theme = "dark"
	settings.ReminderTimes = []string{"07:30"}
	require.NoError(t, uc.SaveSettings(ctx, &settings))

	stored, err := uc.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", stored.Theme)
	assert.Equal(t, []string{"07:30"}, stored.ReminderTimes)
}

func TestSaveSettingsRejectsInvalid(t *testing.T) {
	uc, _ := newFixture(t)

	settings := domain.DefaultSettings()
	settings.ReminderTimes = []string{"not-a-time"}
	err := uc.SaveSettings(context.Background(), &settings)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestProfileNotFoundBeforeFirstSave(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.Profile(context.Background())
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestSaveProfileCreatesThenPreservesIdentity(t *testing.T) {
	uc, _ := newFixture(t)
	ctx := context.Background()

	first, err := uc.SaveProfile(ctx, SaveInput{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, testNow, first.CreatedAt)

	second, err := uc.SaveProfile(ctx, SaveInput{Name: "Dana R.", Signature: "Dana R."})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Dana R.", second.Name)
	assert.Empty(t, second.Email)
}

func TestSaveProfileRequiresName(t *testing.T) {
	uc, _ := newFixture(t)

	_, err := uc.SaveProfile(context.Background(), SaveInput{Name: "  "})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}
