package timers

import (
	"time"

	"timerdeck/internal/core/model"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventTimerAdded    EventType = "timer_added"
	EventTimerChanged  EventType = "timer_changed"
	EventTimerRemoved  EventType = "timer_removed"
	EventTick          EventType = "tick"
	EventHalfway       EventType = "halfway"
	EventCompleted     EventType = "completed"
	EventIdlePaused    EventType = "idle_paused"
	EventIdleError     EventType = "idle_error"
	EventPersistFailed EventType = "persist_failed"
	EventLoaded        EventType = "loaded"
)

// Event represents an engine update for observers. Timer holds a copy of
// the affected record; Entry is set for EventCompleted.
type Event struct {
	Type    EventType
	Timer   model.Timer
	Entry   *model.HistoryEntry
	Count   int
	Message string
	At      time.Time
}
