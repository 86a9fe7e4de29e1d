package timers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"timerdeck/internal/core/model"
	"timerdeck/internal/storage"
)

var testStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	next := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		next++
		return fmt.Sprintf("timer-%d", next)
	}
}

func newTestStore(t *testing.T, port storage.Port) (*Store, *ManualClock) {
	t.Helper()
	clock := NewManualClock(testStart)
	store := NewStore(Options{
		Clock:  clock,
		Port:   port,
		Logger: discardLogger(),
		NewID:  sequentialIDs(),
	})
	t.Cleanup(store.Close)
	return store, clock
}

func newTestScheduler(store *Store, clock Clock) *Scheduler {
	return NewScheduler(store, clock, modelConfig(false), discardLogger())
}

// failingPort rejects every write and optionally every read.
type failingPort struct {
	mu        sync.Mutex
	failLoad  bool
	saveCalls int
}

var errPortDown = errors.New("port down")

func (port *failingPort) Load(context.Context, string) ([]byte, error) {
	if port.failLoad {
		return nil, errPortDown
	}
	return nil, nil
}

func (port *failingPort) Save(context.Context, string, []byte) error {
	port.mu.Lock()
	port.saveCalls++
	port.mu.Unlock()
	return errPortDown
}

// drain collects the events already buffered on ch.
func drain(ch <-chan Event) []Event {
	var events []Event
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, event)
		default:
			return events
		}
	}
}

func eventsOfType(events []Event, eventType EventType) []Event {
	var matched []Event
	for _, event := range events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func modelConfig(removeCompleted bool) model.EngineConfig {
	return model.EngineConfig{TickInterval: time.Second, RemoveCompleted: removeCompleted}
}
