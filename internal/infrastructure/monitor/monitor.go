package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stridelog/backend/internal/infrastructure/bolt"
)

// Monitor periodically probes the embedded store and keeps a health snapshot
// for the health endpoint.
type Monitor struct {
	store *bolt.Store

	status    Status
	lastSweep time.Time
	mu        sync.RWMutex
	interval  time.Duration
	stopCh    chan struct{}
	logger    *zap.Logger
}

func New(store *bolt.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	close(m.stopCh)
}

// Healthy reports whether the store answered the last probe.
func (m *Monitor) Healthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Store
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	status := m.status
	status.LastSweep = m.lastSweep
	return status
}

// RecordSweep notes when the last lifecycle sweep finished.
func (m *Monitor) RecordSweep(at time.Time) {
	m.mu.Lock()
	m.lastSweep = at
	m.mu.Unlock()
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.refresh()
	for {
		select {
		case <-ticker.C:
			m.refresh()
		case <-m.stopCh:
			return
		}
	}
}

func (m *Monitor) refresh() {
	status := Status{
		Store:     m.checkStore(),
		LastCheck: time.Now(),
	}
	if status.Store {
		status.Challenges = m.count(bolt.BucketChallenges)
		status.Progress = m.count(bolt.BucketProgress)
		status.Reflections = m.count(bolt.BucketReflections)
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

func (m *Monitor) checkStore() bool {
	if m.store == nil {
		return false
	}
	return m.store.Ping() == nil
}

func (m *Monitor) count(bucket string) int {
	n, err := m.store.Count(bucket)
	if err != nil {
		m.logger.Warn("bucket count failed", zap.String("bucket", bucket), zap.Error(err))
		return 0
	}
	return n
}
