package timers

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timerdeck/internal/core/model"
)

type fakeIdleChecker struct {
	mu    sync.Mutex
	idle  time.Duration
	err   error
	calls int
}

func (checker *fakeIdleChecker) IdleDuration() (time.Duration, error) {
	checker.mu.Lock()
	defer checker.mu.Unlock()
	checker.calls++
	return checker.idle, checker.err
}

func (checker *fakeIdleChecker) set(idle time.Duration) {
	checker.mu.Lock()
	checker.idle = idle
	checker.mu.Unlock()
}

func idleConfig() model.EngineConfig {
	return model.EngineConfig{
		TickInterval:      time.Second,
		IdlePauseAfter:    time.Minute,
		IdleCheckInterval: time.Second,
	}
}

func TestIdlePausesRunningTimers(t *testing.T) {
	store, clock := newTestStore(t, nil)
	scheduler := NewScheduler(store, clock, idleConfig(), discardLogger())
	checker := &fakeIdleChecker{idle: 2 * time.Minute}
	scheduler.SetIdleChecker(checker)
	timer, err := store.AddTimer("Focus", 60, "Work")
	require.NoError(t, err)
	events := store.Subscribe(16)
	store.Start(timer.ID)

	result := scheduler.Tick(clock.Now())

	assert.Zero(t, result.Advanced)
	current, _ := store.Timer(timer.ID)
	assert.Equal(t, model.StatusPaused, current.Status)
	assert.Equal(t, 60, current.Remaining)

	paused := eventsOfType(drain(events), EventIdlePaused)
	require.Len(t, paused, 1)
	assert.Equal(t, 1, paused[0].Count)
}

func TestIdlePauseOncePerIdleStretch(t *testing.T) {
	store, clock := newTestStore(t, nil)
	scheduler := NewScheduler(store, clock, idleConfig(), discardLogger())
	checker := &fakeIdleChecker{idle: 2 * time.Minute}
	scheduler.SetIdleChecker(checker)
	timer, err := store.AddTimer("Focus", 60, "Work")
	require.NoError(t, err)
	store.Start(timer.ID)

	scheduler.Tick(clock.Now())
	store.Start(timer.ID)
	clock.Advance(time.Second)
	scheduler.Tick(clock.Now())

	current, _ := store.Timer(timer.ID)
	assert.Equal(t, model.StatusRunning, current.Status)
	assert.Equal(t, 59, current.Remaining)

	checker.set(0)
	clock.Advance(time.Second)
	scheduler.Tick(clock.Now())
	checker.set(2 * time.Minute)
	clock.Advance(time.Second)
	scheduler.Tick(clock.Now())

	current, _ = store.Timer(timer.ID)
	assert.Equal(t, model.StatusPaused, current.Status)
}

func TestIdleCheckRespectsInterval(t *testing.T) {
	store, clock := newTestStore(t, nil)
	config := idleConfig()
	config.IdleCheckInterval = 10 * time.Second
	scheduler := NewScheduler(store, clock, config, discardLogger())
	checker := &fakeIdleChecker{}
	scheduler.SetIdleChecker(checker)

	for range 5 {
		scheduler.Tick(clock.Now())
		clock.Advance(time.Second)
	}
	assert.Equal(t, 1, checker.calls)
}

func TestIdleUnsupportedDisablesChecks(t *testing.T) {
	store, clock := newTestStore(t, nil)
	scheduler := NewScheduler(store, clock, idleConfig(), discardLogger())
	checker := &fakeIdleChecker{err: fmt.Errorf("xprintidle: %w", ErrIdleUnsupported)}
	scheduler.SetIdleChecker(checker)
	events := store.Subscribe(16)

	for range 3 {
		scheduler.Tick(clock.Now())
		clock.Advance(time.Second)
	}

	assert.Equal(t, 1, checker.calls)
	assert.Len(t, eventsOfType(drain(events), EventIdleError), 1)
}

func TestIdleDisabledWithoutThreshold(t *testing.T) {
	store, clock := newTestStore(t, nil)
	scheduler := newTestScheduler(store, clock)
	checker := &fakeIdleChecker{idle: time.Hour}
	scheduler.SetIdleChecker(checker)

	scheduler.Tick(clock.Now())
	assert.Zero(t, checker.calls)
}
