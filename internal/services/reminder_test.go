package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridelog/backend/domain"
)

type fakeSettings struct {
	settings domain.UserSettings
}

func (f *fakeSettings) Settings(ctx context.Context) (*domain.UserSettings, error) {
	s := f.settings
	return &s, nil
}

type fakeActive struct {
	challenge *domain.Challenge
}

func (f *fakeActive) Active(ctx context.Context) (*domain.Challenge, error) {
	return f.challenge, nil
}

type captureNotifier struct {
	fired []string
}

func (c *captureNotifier) Notify(ctx context.Context, challenge *domain.Challenge, at string) error {
	c.fired = append(c.fired, at)
	return nil
}

func TestCronSpec(t *testing.T) {
	spec, err := cronSpec("09:00")
	require.NoError(t, err)
	assert.Equal(t, "0 9 * * *", spec)

	spec, err = cronSpec("18:30")
	require.NoError(t, err)
	assert.Equal(t, "30 18 * * *", spec)

	_, err = cronSpec("9am")
	assert.Error(t, err)
	_, err = cronSpec("25:00")
	assert.Error(t, err)
}

func TestRefreshSchedulesConfiguredTimes(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ReminderTimes = []string{"07:00", "12:30", "oops"}
	r := NewReminder(&fakeSettings{settings: settings}, &fakeActive{}, nil, nil)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Len(t, r.entries, 2)
}

func TestRefreshWithNotificationsDisabled(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Notifications = false
	r := NewReminder(&fakeSettings{settings: settings}, &fakeActive{}, nil, nil)

	require.NoError(t, r.Refresh(context.Background()))
	assert.Empty(t, r.entries)
}

func TestFireSkipsWithoutActiveChallenge(t *testing.T) {
	notifier := &captureNotifier{}
	r := NewReminder(&fakeSettings{settings: domain.DefaultSettings()}, &fakeActive{}, notifier, nil)

	r.fire("09:00")
	assert.Empty(t, notifier.fired)
}

func TestFireNotifiesActiveChallenge(t *testing.T) {
	notifier := &captureNotifier{}
	active := &fakeActive{challenge: &domain.Challenge{ID: "c1", Name: "Running", CurrentDay: 3}}
	r := NewReminder(&fakeSettings{settings: domain.DefaultSettings()}, active, notifier, nil)

	r.fire("09:00")
	assert.Equal(t, []string{"09:00"}, notifier.fired)
}
