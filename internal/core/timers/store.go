package timers

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"timerdeck/internal/core/model"
	"timerdeck/internal/storage"
	"timerdeck/internal/telemetry"
)

const persistTimeout = 5 * time.Second

// Options configures a Store.
type Options struct {
	Clock  Clock
	Port   storage.Port // nil disables persistence
	Logger *slog.Logger
	NewID  func() string
}

// Store owns the timer collection and the history log. Every mutation,
// including scheduler ticks, runs to completion under one lock.
type Store struct {
	mu      sync.Mutex
	clock   Clock
	port    storage.Port
	log     *slog.Logger
	newID   func() string
	timers  []model.Timer
	history *HistoryRecorder
	events  []chan Event
	metrics storeMetrics
}

type storeMetrics struct {
	actions         metric.Int64Counter
	completions     metric.Int64Counter
	persistFailures metric.Int64Counter
}

// timerPatch lists the mutable fields of a timer; nil means unchanged.
type timerPatch struct {
	remaining       *int
	status          *model.Status
	halfwayNotified *bool
}

// NewStore creates an empty store.
func NewStore(options Options) *Store {
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.NewID == nil {
		options.NewID = uuid.NewString
	}

	meter := telemetry.Meter("timerdeck/timers")
	return &Store{
		clock:   options.Clock,
		port:    options.Port,
		log:     options.Logger,
		newID:   options.NewID,
		history: NewHistoryRecorder(nil),
		metrics: storeMetrics{
			actions:         telemetry.Counter(meter, "timerdeck.timers.actions", "Timer control actions that changed state"),
			completions:     telemetry.Counter(meter, "timerdeck.timers.completions", "Timers that reached zero"),
			persistFailures: telemetry.Counter(meter, "timerdeck.persist.failures", "Failed writes to the storage port"),
		},
	}
}

// Load replaces the in-memory state with the persisted collections.
// Absent or corrupt documents load as empty collections; the returned
// error only reports a failing storage port.
func (store *Store) Load(ctx context.Context) error {
	if store.port == nil {
		return nil
	}

	var timersData, historyData []byte
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		data, err := store.port.Load(groupCtx, storage.KeyTimers)
		timersData = data
		return err
	})
	group.Go(func() error {
		data, err := store.port.Load(groupCtx, storage.KeyHistory)
		historyData = data
		return err
	})
	loadErr := group.Wait()
	if loadErr != nil {
		timersData, historyData = nil, nil
		store.log.Warn("state unavailable, starting empty", slog.String("error", loadErr.Error()))
	}

	loadedTimers, err := storage.DecodeTimers(timersData)
	if err != nil {
		store.log.Warn("discarding stored timers", slog.String("error", err.Error()))
	}
	entries, err := storage.DecodeHistory(historyData)
	if err != nil {
		store.log.Warn("discarding stored history", slog.String("error", err.Error()))
	}

	timers := make([]model.Timer, 0, len(loadedTimers))
	seen := make(map[string]bool, len(loadedTimers))
	for _, timer := range loadedTimers {
		normalized, ok := normalizeTimer(timer)
		if !ok || seen[normalized.ID] {
			continue
		}
		seen[normalized.ID] = true
		timers = append(timers, normalized)
	}

	store.mu.Lock()
	store.timers = timers
	store.history = NewHistoryRecorder(entries)
	store.emitLocked(Event{Type: EventLoaded, Count: len(timers), At: store.clock.Now()})
	store.mu.Unlock()

	store.log.Info("state loaded", slog.Int("timers", len(timers)), slog.Int("history", len(entries)))
	if loadErr != nil {
		return fmt.Errorf("load state: %w", loadErr)
	}
	return nil
}

// AddTimer validates the input and appends a new paused timer.
func (store *Store) AddTimer(name string, duration int, category string) (model.Timer, error) {
	input := model.TimerInput{Name: name, Duration: duration, Category: category}.Normalize()
	if err := input.Validate(); err != nil {
		return model.Timer{}, err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	timer := model.Timer{
		ID:        store.newID(),
		Name:      input.Name,
		Category:  input.Category,
		Duration:  input.Duration,
		Remaining: input.Duration,
		Status:    model.StatusPaused,
		CreatedAt: store.clock.Now(),
	}
	store.timers = append(store.timers, timer)
	store.persistTimersLocked()
	store.emitLocked(Event{Type: EventTimerAdded, Timer: timer, At: timer.CreatedAt})
	store.log.Debug("timer added", slog.String("id", timer.ID), slog.String("category", timer.Category))
	return timer, nil
}

// Start runs a paused timer that has time left. Unknown ids are ignored.
func (store *Store) Start(id string) {
	store.Apply(id, model.ActionStart)
}

// Pause stops a running timer. Unknown ids are ignored.
func (store *Store) Pause(id string) {
	store.Apply(id, model.ActionPause)
}

// Reset restores the full duration and pauses the timer, whatever its status.
func (store *Store) Reset(id string) {
	store.Apply(id, model.ActionReset)
}

// Apply runs one action against one timer and reports whether it changed.
func (store *Store) Apply(id string, action model.Action) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	timer, changed := store.applyLocked(id, action)
	if !changed {
		return false
	}
	store.persistTimersLocked()
	store.emitLocked(Event{Type: EventTimerChanged, Timer: timer, At: store.clock.Now()})
	store.recordAction(action, 1)
	return true
}

// Delete removes the timer if present.
func (store *Store) Delete(id string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexLocked(id)
	if index < 0 {
		return
	}
	timer := store.timers[index]
	store.timers = slices.Delete(store.timers, index, index+1)
	store.persistTimersLocked()
	store.emitLocked(Event{Type: EventTimerRemoved, Timer: timer, At: store.clock.Now()})
}

// ClearCompleted removes every completed timer and returns how many went.
func (store *Store) ClearCompleted() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.clock.Now()
	var removed []model.Timer
	store.timers = slices.DeleteFunc(store.timers, func(timer model.Timer) bool {
		if timer.Status == model.StatusCompleted {
			removed = append(removed, timer)
			return true
		}
		return false
	})
	if len(removed) == 0 {
		return 0
	}
	store.persistTimersLocked()
	for _, timer := range removed {
		store.emitLocked(Event{Type: EventTimerRemoved, Timer: timer, At: now})
	}
	return len(removed)
}

// Timers returns a copy of the collection in creation order.
func (store *Store) Timers() []model.Timer {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.Timer{}, store.timers...)
}

// Timer returns a copy of one timer.
func (store *Store) Timer(id string) (model.Timer, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return model.Timer{}, false
	}
	return store.timers[index], true
}

// History returns the completion log, most recent first.
func (store *Store) History() []model.HistoryEntry {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.history.Entries()
}

// Groups returns the current category index.
func (store *Store) Groups() []CategoryGroup {
	return GroupByCategory(store.Timers())
}

// Categories lists the categories in use.
func (store *Store) Categories() []string {
	return CategoryNames(store.Timers())
}

// Stats counts timers by status; an empty category means all timers.
func (store *Store) Stats(category string) CategoryStats {
	timers := store.Timers()
	if category == "" {
		return statsOf(timers)
	}
	return statsOf(IndexByCategory(timers)[category])
}

// Subscribe registers a new observer channel.
func (store *Store) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	store.mu.Lock()
	store.events = append(store.events, ch)
	store.mu.Unlock()
	return ch
}

// Close closes every observer channel.
func (store *Store) Close() {
	store.mu.Lock()
	events := store.events
	store.events = nil
	store.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// applyWhere applies action to the timers chosen by selectTimers. The
// selection is computed once, before any timer is touched.
func (store *Store) applyWhere(selectTimers func([]model.Timer) []model.Timer, action model.Action) []model.Timer {
	store.mu.Lock()
	defer store.mu.Unlock()

	selected := selectTimers(append([]model.Timer(nil), store.timers...))
	var changed []model.Timer
	for _, candidate := range selected {
		if timer, ok := store.applyLocked(candidate.ID, action); ok {
			changed = append(changed, timer)
		}
	}
	if len(changed) == 0 {
		return nil
	}

	store.persistTimersLocked()
	now := store.clock.Now()
	for _, timer := range changed {
		store.emitLocked(Event{Type: EventTimerChanged, Timer: timer, At: now})
	}
	store.recordAction(action, len(changed))
	return changed
}

// applyLocked is the per-timer rule shared by single and bulk actions.
func (store *Store) applyLocked(id string, action model.Action) (model.Timer, bool) {
	index := store.indexLocked(id)
	if index < 0 {
		return model.Timer{}, false
	}
	timer := store.timers[index]

	switch action {
	case model.ActionStart:
		if timer.Status != model.StatusPaused || timer.Remaining <= 0 {
			return timer, false
		}
		status := model.StatusRunning
		return store.updateLocked(id, timerPatch{status: &status})
	case model.ActionPause:
		if timer.Status != model.StatusRunning {
			return timer, false
		}
		status := model.StatusPaused
		return store.updateLocked(id, timerPatch{status: &status})
	case model.ActionReset:
		remaining := timer.Duration
		status := model.StatusPaused
		notified := false
		return store.updateLocked(id, timerPatch{remaining: &remaining, status: &status, halfwayNotified: &notified})
	}
	return timer, false
}

// updateLocked is the only code path that writes a timer record. A patch
// that would break 0 <= remaining <= duration or
// status == Completed <=> remaining == 0 is rejected.
func (store *Store) updateLocked(id string, patch timerPatch) (model.Timer, bool) {
	index := store.indexLocked(id)
	if index < 0 {
		return model.Timer{}, false
	}
	current := store.timers[index]
	next := current

	if patch.remaining != nil {
		next.Remaining = *patch.remaining
	}
	if patch.status != nil {
		next.Status = *patch.status
	}
	if patch.halfwayNotified != nil {
		next.HalfwayNotified = *patch.halfwayNotified
	}

	if next.Remaining < 0 || next.Remaining > next.Duration {
		store.log.Error("rejected timer update", slog.String("id", id), slog.Int("remaining", next.Remaining))
		return current, false
	}
	if next.Remaining == 0 {
		next.Status = model.StatusCompleted
	} else if next.Status == model.StatusCompleted || !next.Status.Valid() {
		store.log.Error("rejected timer update", slog.String("id", id), slog.String("status", string(next.Status)))
		return current, false
	}

	if next == current {
		return current, false
	}
	store.timers[index] = next
	return next, true
}

func (store *Store) indexLocked(id string) int {
	return slices.IndexFunc(store.timers, func(timer model.Timer) bool {
		return timer.ID == id
	})
}

func (store *Store) persistTimersLocked() {
	if store.port == nil {
		return
	}
	data, err := storage.EncodeTimers(store.timers)
	if err == nil {
		err = store.save(storage.KeyTimers, data)
	}
	if err != nil {
		store.persistFailedLocked(storage.KeyTimers, err)
	}
}

func (store *Store) persistHistoryLocked() {
	if store.port == nil {
		return
	}
	data, err := storage.EncodeHistory(store.history.entries)
	if err == nil {
		err = store.save(storage.KeyHistory, data)
	}
	if err != nil {
		store.persistFailedLocked(storage.KeyHistory, err)
	}
}

func (store *Store) save(key string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return store.port.Save(ctx, key, data)
}

// persistFailedLocked reports a failed write. Memory stays authoritative.
func (store *Store) persistFailedLocked(key string, err error) {
	store.log.Warn("persist failed", slog.String("key", key), slog.String("error", err.Error()))
	store.metrics.persistFailures.Add(context.Background(), 1, metric.WithAttributes(attribute.String("key", key)))
	store.emitLocked(Event{Type: EventPersistFailed, Message: err.Error(), At: store.clock.Now()})
}

func (store *Store) recordAction(action model.Action, count int) {
	store.metrics.actions.Add(context.Background(), int64(count), metric.WithAttributes(attribute.String("action", action.String())))
}

func (store *Store) emitLocked(event Event) {
	for _, ch := range store.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// normalizeTimer repairs a persisted record so the invariants hold, or
// rejects it when it cannot be repaired.
func normalizeTimer(timer model.Timer) (model.Timer, bool) {
	if timer.ID == "" || timer.Duration <= 0 || timer.Duration > model.MaxDuration {
		return timer, false
	}
	if timer.Remaining < 0 {
		timer.Remaining = 0
	}
	if timer.Remaining > timer.Duration {
		timer.Remaining = timer.Duration
	}
	switch {
	case timer.Remaining == 0:
		timer.Status = model.StatusCompleted
	case timer.Status == model.StatusCompleted || !timer.Status.Valid():
		timer.Status = model.StatusPaused
	}
	return timer, true
}
