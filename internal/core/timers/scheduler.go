package timers

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"timerdeck/internal/core/model"
	"timerdeck/internal/telemetry"
)

// TickResult summarizes one scheduler pass.
type TickResult struct {
	Advanced  int
	Halfway   []model.Timer
	Completed []model.HistoryEntry
	Removed   int
}

// Scheduler drives every running timer from one shared ticker.
type Scheduler struct {
	mu            sync.Mutex
	store         *Store
	clock         Clock
	config        model.EngineConfig
	log           *slog.Logger
	idleChecker   IdleChecker
	idleDisabled  bool
	idlePaused    bool
	lastIdleCheck time.Time
	stopCh        chan struct{}
	doneCh        chan struct{}
	running       bool
	ticks         metric.Int64Counter
}

// NewScheduler creates a scheduler for store. It does not tick until Start.
func NewScheduler(store *Store, clock Clock, config model.EngineConfig, log *slog.Logger) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		store:  store,
		clock:  clock,
		config: normalizeConfig(config),
		log:    log,
		ticks:  telemetry.Counter(telemetry.Meter("timerdeck/timers"), "timerdeck.scheduler.ticks", "Scheduler passes over running timers"),
	}
}

// UpdateConfig swaps the engine configuration. A new tick interval takes
// effect on the next Start.
func (scheduler *Scheduler) UpdateConfig(config model.EngineConfig) {
	scheduler.mu.Lock()
	scheduler.config = normalizeConfig(config)
	scheduler.idlePaused = false
	scheduler.mu.Unlock()
}

// Start launches the ticking loop.
func (scheduler *Scheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.running {
		return
	}
	scheduler.running = true
	scheduler.stopCh = make(chan struct{})
	scheduler.doneCh = make(chan struct{})

	ticker := scheduler.clock.NewTicker(scheduler.config.TickInterval)
	go scheduler.run(ticker, scheduler.stopCh, scheduler.doneCh)
	scheduler.log.Info("scheduler started", slog.Duration("interval", scheduler.config.TickInterval))
}

// Stop terminates the ticking loop and waits for an in-flight tick.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	if !scheduler.running {
		scheduler.mu.Unlock()
		return
	}
	scheduler.running = false
	close(scheduler.stopCh)
	doneCh := scheduler.doneCh
	scheduler.mu.Unlock()

	<-doneCh
	scheduler.log.Info("scheduler stopped")
}

// Tick advances every running timer by one second as of now.
func (scheduler *Scheduler) Tick(now time.Time) TickResult {
	scheduler.mu.Lock()
	removeCompleted := scheduler.config.RemoveCompleted
	scheduler.checkIdleLocked(now)
	scheduler.mu.Unlock()

	result := scheduler.store.advance(now, removeCompleted)
	if result.Advanced > 0 {
		scheduler.ticks.Add(context.Background(), 1)
	}
	return result
}

func (scheduler *Scheduler) run(ticker Ticker, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C():
			scheduler.Tick(tickTime)
		}
	}
}

// advance applies one tick. Every decrement is computed from the same
// pre-tick snapshot, and the whole pass holds the store lock.
func (store *Store) advance(now time.Time, removeCompleted bool) TickResult {
	store.mu.Lock()
	defer store.mu.Unlock()

	type step struct {
		id        string
		remaining int
		halfway   bool
	}
	var steps []step
	for _, timer := range store.timers {
		if timer.Status != model.StatusRunning {
			continue
		}
		remaining := max(0, timer.Remaining-1)
		steps = append(steps, step{
			id:        timer.ID,
			remaining: remaining,
			halfway:   remaining > 0 && !timer.HalfwayNotified && remaining*2 <= timer.Duration,
		})
	}

	var result TickResult
	if len(steps) == 0 {
		return result
	}

	var finished []string
	for _, step := range steps {
		patch := timerPatch{remaining: &step.remaining}
		if step.halfway {
			notified := true
			patch.halfwayNotified = &notified
		}
		timer, changed := store.updateLocked(step.id, patch)
		if !changed {
			continue
		}
		result.Advanced++

		switch {
		case timer.Status == model.StatusCompleted:
			entry := store.history.RecordCompletion(timer, now)
			result.Completed = append(result.Completed, entry)
			store.emitLocked(Event{Type: EventCompleted, Timer: timer, Entry: &entry, At: now})
			if removeCompleted {
				finished = append(finished, timer.ID)
			}
		case step.halfway:
			result.Halfway = append(result.Halfway, timer)
			store.emitLocked(Event{Type: EventHalfway, Timer: timer, At: now})
		}
	}

	for _, id := range finished {
		if index := store.indexLocked(id); index >= 0 {
			timer := store.timers[index]
			store.timers = slices.Delete(store.timers, index, index+1)
			store.emitLocked(Event{Type: EventTimerRemoved, Timer: timer, At: now})
			result.Removed++
		}
	}

	store.persistTimersLocked()
	if len(result.Completed) > 0 {
		store.persistHistoryLocked()
		store.metrics.completions.Add(context.Background(), int64(len(result.Completed)))
	}
	store.emitLocked(Event{Type: EventTick, Count: result.Advanced, At: now})
	return result
}

func normalizeConfig(config model.EngineConfig) model.EngineConfig {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.IdleCheckInterval <= 0 {
		config.IdleCheckInterval = 5 * time.Second
	}
	return config
}
