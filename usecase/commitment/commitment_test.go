package commitment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridelog/backend/domain"
	"github.com/stridelog/backend/internal/testutil"
)

func TestGenerateLetter(t *testing.T) {
	store := testutil.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.ChallengeRepo().Put(ctx, &domain.Challenge{
		ID:        "c1",
		Name:      "No Sugar Month",
		StartDate: "2025-04-01",
		TotalDays: 30,
		Rules:     []string{"No added sugar", "Read every label"},
	}))
	require.NoError(t, store.ProfileRepo().Put(ctx, &domain.UserProfile{ID: "u1", Name: "Dana", Signature: "Dana R."}))

	uc := New(store.ChallengeRepo(), store.ProfileRepo(), WithClock(func() time.Time {
		return time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	}))

	letter, err := uc.Generate(ctx, "c1", "Sam")
	require.NoError(t, err)

	assert.Equal(t, "No_Sugar_Month_Commitment_Letter.txt", letter.Filename)
	assert.Contains(t, letter.Content, `Challenge: No Sugar Month`)
	assert.Contains(t, letter.Content, "Duration: 30 days")
	assert.Contains(t, letter.Content, "Start Date: Apr 1, 2025")
	assert.Contains(t, letter.Content, "End Date: Apr 30, 2025")
	assert.Contains(t, letter.Content, "1. No added sugar")
	assert.Contains(t, letter.Content, "2. Read every label")
	assert.Contains(t, letter.Content, "Signed: Dana R.")
	assert.Contains(t, letter.Content, "Witness: Sam")
}

func TestGenerateWithoutProfileOrWitness(t *testing.T) {
	store := testutil.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.ChallengeRepo().Put(ctx, &domain.Challenge{
		ID:        "c1",
		Name:      "Cold Showers",
		StartDate: "2025-04-01",
		TotalDays: 7,
	}))

	uc := New(store.ChallengeRepo(), store.ProfileRepo())
	letter, err := uc.Generate(ctx, "c1", "")
	require.NoError(t, err)
	assert.Contains(t, letter.Content, "Signed: _________________________")
	assert.NotContains(t, letter.Content, "Witness:")
}

func TestGenerateMissingChallenge(t *testing.T) {
	store := testutil.NewMemoryStore()
	uc := New(store.ChallengeRepo(), store.ProfileRepo())
	_, err := uc.Generate(context.Background(), "nope", "")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
