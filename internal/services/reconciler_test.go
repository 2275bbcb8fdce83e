package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSweeper) ReconcileAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeSweeper) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeRecorder struct {
	mu   sync.Mutex
	last time.Time
}

func (f *fakeRecorder) RecordSweep(at time.Time) {
	f.mu.Lock()
	f.last = at
	f.mu.Unlock()
}

func TestRunOnceRecordsSweep(t *testing.T) {
	sweeper := &fakeSweeper{}
	recorder := &fakeRecorder{}
	r := NewReconciler(sweeper, recorder, nil, ReconcilerConfig{Interval: time.Hour})

	require.NoError(t, r.RunOnce(context.Background()))
	assert.Equal(t, 1, sweeper.count())
	assert.False(t, r.LastRun().IsZero())

	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	assert.Equal(t, r.LastRun(), recorder.last)
}

func TestRunOnceFailureLeavesLastRunUnset(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("store closed")}
	r := NewReconciler(sweeper, nil, nil, ReconcilerConfig{Interval: time.Hour})

	assert.Error(t, r.RunOnce(context.Background()))
	assert.True(t, r.LastRun().IsZero())
}

func TestStartBootSweep(t *testing.T) {
	sweeper := &fakeSweeper{}
	r := NewReconciler(sweeper, nil, nil, ReconcilerConfig{Interval: time.Hour, OnBoot: true})

	r.Start()
	defer r.Stop(context.Background())
	assert.Equal(t, 1, sweeper.count())
}

func TestStartWithoutBootSweep(t *testing.T) {
	sweeper := &fakeSweeper{}
	r := NewReconciler(sweeper, nil, nil, ReconcilerConfig{Interval: time.Hour})

	r.Start()
	defer r.Stop(context.Background())
	assert.Equal(t, 0, sweeper.count())
}
